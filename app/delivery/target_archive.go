package delivery

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
)

// ArchiveTarget copies document bytes into a local archive directory, kept
// separate from the servable documents area.
type ArchiveTarget struct {
	path string
}

func NewArchiveTarget(path string) *ArchiveTarget {
	return &ArchiveTarget{path: path}
}

func (t *ArchiveTarget) Name() string {
	return "archive"
}

func (t *ArchiveTarget) Deliver(ctx context.Context, doc Document) error {
	if err := os.MkdirAll(t.path, 0700); err != nil {
		return &Fault{Kind: FaultInternal, Err: err}
	}
	data, err := ioutil.ReadFile(doc.Path)
	if err != nil {
		return &Fault{Kind: FaultInternal, Err: err}
	}
	if err := ioutil.WriteFile(filepath.Join(t.path, doc.Filename), data, 0600); err != nil {
		return &Fault{Kind: FaultInternal, Err: err}
	}
	return nil
}
