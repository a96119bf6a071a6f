package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

var WorkbookNotFoundError = errors.New("workbook not found")

var workbooksBucket = []byte("workbooks")

// WorkbookStore persists exported workbook documents in a bbolt file, one
// document per workbook id.
type WorkbookStore struct {
	db *bbolt.DB
}

func NewWorkbookStore(path string) (*WorkbookStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(workbooksBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &WorkbookStore{db: db}, nil
}

func (s *WorkbookStore) Close() error { return s.db.Close() }

// Save writes the workbook's current document under id, replacing any
// previous revision.
func (s *WorkbookStore) Save(id string, workbook *Workbook) error {
	document, err := workbook.ExportJSON()
	if err != nil {
		return err
	}

	return s.db.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(workbooksBucket).Put([]byte(id), document)
	})
}

// Load reads the stored document for id into workbook, replacing whatever
// the workbook held.
func (s *WorkbookStore) Load(id string, workbook *Workbook) error {
	var document []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		stored := tx.Bucket(workbooksBucket).Get([]byte(id))
		if stored == nil {
			return fmt.Errorf("%s: %w", id, WorkbookNotFoundError)
		}
		// the slice is only valid inside the transaction
		document = make([]byte, len(stored))
		copy(document, stored)
		return nil
	})
	if err != nil {
		return err
	}

	return workbook.ImportJSON(document)
}

func (s *WorkbookStore) Delete(id string) error {
	return s.db.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(workbooksBucket).Delete([]byte(id))
	})
}

// List returns every stored workbook id in lexical order.
func (s *WorkbookStore) List() ([]string, error) {
	ids := make([]string, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(workbooksBucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			ids = append(ids, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(ids)
	return ids, nil
}
