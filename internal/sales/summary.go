package sales

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alhinc/calcsales/internal/master"
)

// WriteSummary writes t's totals to dir/name, replacing any existing file.
func WriteSummary(dir, name string, t *master.Table) error {
	s, err := stageSummary(dir, name, t)
	if err != nil {
		return err
	}
	return s.commit()
}

// stagedSummary is a fully written summary waiting to be renamed into place.
type stagedSummary struct {
	tmp  string
	path string
}

func stageSummary(dir, name string, t *master.Table) (*stagedSummary, error) {
	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, summaryError(name, fmt.Errorf("%s is a directory", path))
	}

	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return nil, summaryError(name, fmt.Errorf("creating summary file: %w", err))
	}
	tmp := f.Name()

	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, summaryError(name, fmt.Errorf("setting summary file mode: %w", err))
	}
	if err := master.WriteTotals(f, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, summaryError(name, fmt.Errorf("writing summary: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return nil, summaryError(name, fmt.Errorf("closing summary: %w", err))
	}
	return &stagedSummary{tmp: tmp, path: path}, nil
}

func (s *stagedSummary) commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		os.Remove(s.tmp)
		return summaryError(filepath.Base(s.path), fmt.Errorf("replacing summary: %w", err))
	}
	return nil
}

func (s *stagedSummary) discard() {
	_ = os.Remove(s.tmp)
}

func summaryError(name string, err error) error {
	return &Error{Kind: KindUnknown, File: name, Err: err}
}
