package contracts

// Workbook is the operation surface the control bus drives. One call is one
// logical operation: it runs to completion, propagation cascade included,
// before the next call is accepted.
type Workbook interface {
	SetCell(sheet string, ref string, content string) (*Cell, error)
	GetCell(sheet string, ref string) (*Cell, error)
	SheetCells(sheet string) (CellList, error)

	InsertRow(sheet string, pos int) error
	DeleteRow(sheet string, pos int) error
	InsertColumn(sheet string, pos int) error
	DeleteColumn(sheet string, pos int) error
	SwapColumns(sheet string, col int) error

	SortRange(sheet string, rangeRef string, byColumn string, ascending bool) error
	Fill(sheet string, sourceRange string, targetRange string) error
	FindReplace(sheet string, find string, replace string, opts FindReplaceOptions) (int, error)

	Undo(sheet string) error
	Redo(sheet string) error

	AddSheet(name string) error
	DeleteSheet(name string) error
	RenameSheet(oldName string, newName string) error
	SetActiveSheet(name string) error
	SheetNames() []string
	ActiveSheet() string

	SetNamedRange(sheet string, name string, rangeRef string) error
	DeleteNamedRange(sheet string, name string) error

	ExportJSON() ([]byte, error)
	ImportJSON(document []byte) error
}

// FindReplaceOptions are the independent flags of a find/replace pass.
type FindReplaceOptions struct {
	MatchCase       bool `json:"matchCase"`
	MatchEntireCell bool `json:"matchEntireCell"`
	SearchFormulas  bool `json:"searchFormulas"`
}

// ChangeDispatcher delivers one change notification per external mutating
// operation to whoever subscribed to the sheet.
type ChangeDispatcher interface {
	SetWebhookURL(sheet string, webhookURL string)
	GetWebhookURL(sheet string) string
	Notify(sheet string, cells []*Cell)
	Start()
	Close()
}
