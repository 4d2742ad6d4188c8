// Package importer loads corpus datasets into the store: OSIS verse text
// with optional morphology tagging, and TSV dumps for cross-references,
// lexicon entries, concept mappings, source assignments, metaphors, and
// extra-biblical citations. Import is a separate phase from querying;
// nothing here runs during a navigate call.
package importer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"bcnav/internal/logging"
	"bcnav/internal/store"
)

// Importer writes datasets into a corpus store.
type Importer struct {
	store *store.Store
}

// New returns an Importer over the store.
func New(s *store.Store) *Importer {
	return &Importer{store: s}
}

// openMaybeCompressed opens a dataset file, transparently decompressing
// .xz dumps.
func openMaybeCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &xzReadCloser{Reader: xr, file: f}, nil
	}
	return f, nil
}

type xzReadCloser struct {
	io.Reader
	file *os.File
}

func (r *xzReadCloser) Close() error {
	return r.file.Close()
}

// logRun records an import outcome in the import log and the structured
// log. The returned error is the run error unchanged, so callers can
// wrap logRun around their result.
func (im *Importer) logRun(ctx context.Context, importType string, started time.Time, records int, runErr error) error {
	status := "completed"
	errText := ""
	if runErr != nil {
		status = "failed"
		errText = runErr.Error()
	}
	logging.ImportEvent(importType, status, records)
	logErr := im.store.LogImport(ctx, store.ImportLog{
		ImportType:  importType,
		Status:      status,
		Records:     records,
		StartedAt:   started,
		CompletedAt: time.Now(),
		Error:       errText,
	})
	if runErr != nil {
		return runErr
	}
	return logErr
}
