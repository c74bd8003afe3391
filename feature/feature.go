// Package feature drives an importer on behalf of a user: import a file,
// review the staged changes, then commit them or not.
package feature

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// Importer reads a file and stages the changes it implies.
type Importer interface {
	// ImportFile reads the file and stages changes.
	ImportFile() error
	// CommitChanges applies the staged changes to the book.
	CommitChanges() error
	// ForgetChanges discards the staged changes.
	ForgetChanges()
	// IsModified reports whether there are staged changes.
	IsModified() bool
}

// Window is where the import is reported.
type Window interface {
	ClearText()
	AddText(text string)
	EnableCommitButton(enable bool)
}

// ErrClosed is returned after Cleanup.
var ErrClosed = errors.New("import feature is closed")

// Feature serializes imports and commits of one importer.
type Feature struct {
	name     string
	mu       sync.Mutex
	importer Importer
	window   Window
	save     func() error
}

// New returns a feature. save is called after a successful commit to
// persist the book, it can be nil.
func New(name string, importer Importer, window Window, save func() error) *Feature {
	log.Debug("feature-invoked", "name", name)
	return &Feature{name: name, importer: importer, window: window, save: save}
}

// ImportFile clears the window and the staged changes, then imports.
//
// Errors are reported in the window, and returned.
func (f *Feature) ImportFile() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.importer == nil {
		return ErrClosed
	}

	f.window.ClearText()
	f.importer.ForgetChanges()
	if err := f.importer.ImportFile(); err != nil {
		return f.handleError(err)
	}
	f.window.EnableCommitButton(f.importer.IsModified())
	return nil
}

// CommitChanges applies the staged changes and saves the book.
func (f *Feature) CommitChanges() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.importer == nil {
		return ErrClosed
	}

	if err := f.importer.CommitChanges(); err != nil {
		return f.handleError(err)
	}
	if f.save != nil {
		if err := f.save(); err != nil {
			return f.handleError(err)
		}
	}
	f.window.EnableCommitButton(f.importer.IsModified())
	return nil
}

// IsModified reports whether the importer has staged changes.
func (f *Feature) IsModified() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.importer != nil && f.importer.IsModified()
}

// Cleanup forgets the staged changes and releases the importer.
func (f *Feature) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.importer == nil {
		return
	}
	f.importer.ForgetChanges()
	f.importer = nil
	log.Debug("feature-closed", "name", f.name)
}

func (f *Feature) handleError(err error) error {
	f.window.AddText(err.Error())
	f.window.EnableCommitButton(false)
	log.Error("import failed", "feature", f.name, "err", err)
	return err
}
