package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const ExitCodeMainError = 1

const DefaultListenPort = ":8080"

// DefaultWorkbookId keys the single workbook the server serves in the
// document store.
const DefaultWorkbookId = "default"

var (
	listenFlag string
	dbPathFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gridcalc",
	Short: "gridcalc - reactive spreadsheet engine",
	Long:  "gridcalc serves a multi-sheet reactive spreadsheet over HTTP and exports workbooks to xlsx.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunServe(listenFlag, databasePath())
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <output.xlsx>",
	Short: "Export the stored workbook to an xlsx file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunExport(databasePath(), args[0])
	},
}

func init() {
	serveCmd.Flags().StringVarP(&listenFlag, "listen", "l", DefaultListenPort, "Listen address")
	rootCmd.PersistentFlags().StringVarP(&dbPathFlag, "database", "d", "", "Workbook database file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}

func databasePath() string {
	if dbPathFlag != "" {
		return dbPathFlag
	}
	return os.Getenv("DATABASE_FILEPATH")
}

func Execute() error {
	return rootCmd.Execute()
}

// RunServe boots the container, restores the stored workbook if there is
// one, and serves the API. Every mutation persists the whole document.
func RunServe(listen string, dbPath string) error {
	gin.SetMode(gin.ReleaseMode)

	container, err := BuildServiceContainer(dbPath)
	if err != nil {
		return err
	}

	container.Dispatcher.Start()
	defer container.Dispatcher.Close()

	if container.Store != nil {
		defer func() { _ = container.Store.Close() }()

		err = container.Store.Load(DefaultWorkbookId, container.Workbook)
		if err != nil && !errors.Is(err, WorkbookNotFoundError) {
			return err
		}

		container.Workbook.SetOnChange(func(string) {
			if saveErr := container.Store.Save(DefaultWorkbookId, container.Workbook); saveErr != nil {
				fmt.Printf("Workbook save error: %s\n", saveErr)
			}
		})
	}

	return http.ListenAndServe(listen, container.Router)
}

// RunExport loads the stored workbook and writes it as xlsx to outputPath.
func RunExport(dbPath string, outputPath string) error {
	if dbPath == "" {
		return errors.New("no database configured; set --database or DATABASE_FILEPATH")
	}

	store, err := NewWorkbookStore(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	workbook := NewWorkbook(NewExpressionEvaluator())
	if err = store.Load(DefaultWorkbookId, workbook); err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	return NewXlsxExporter(workbook).Export(out)
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
		return ExitCodeMainError
	}

	return 0
}
