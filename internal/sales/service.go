package sales

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alhinc/calcsales/internal/config"
	"github.com/alhinc/calcsales/internal/master"
	"github.com/alhinc/calcsales/internal/model"
	"github.com/alhinc/calcsales/internal/records"
)

// Service runs the load, validate, aggregate and write pipeline.
type Service struct {
	defs  []model.TableDef
	ext   string
	limit decimal.Decimal
	log   zerolog.Logger
}

// Result describes a successful run.
type Result struct {
	RunID   string
	Files   []records.File
	Tables  []*master.Table
	Outputs []string
}

// NewService creates a Service from a validated configuration.
func NewService(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Service{
		defs:  cfg.TableDefs(),
		ext:   cfg.Record.Extension,
		limit: Limit(cfg.SumDigits),
		log:   log,
	}, nil
}

// Run aggregates the record files in dir and writes the summaries there.
func (s *Service) Run(dir string) (*Result, error) {
	return s.RunFS(os.DirFS(dir), dir)
}

// RunFS reads masters and records from fsys and writes summaries to outDir.
// Nothing is written unless every record is valid.
func (s *Service) RunFS(fsys fs.FS, outDir string) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := s.log.With().Str("run_id", res.RunID).Logger()
	log.Info().Str("dir", outDir).Int("tables", len(s.defs)).Msg("run start")

	tables, err := s.loadTables(fsys, log)
	if err != nil {
		return nil, s.fail(log, err)
	}
	res.Tables = tables

	files, err := records.Discover(fsys, s.ext)
	if err != nil {
		kind := KindUnknown
		if errors.Is(err, records.ErrNotSequential) {
			kind = KindNonSequentialFiles
		}
		return nil, s.fail(log, &Error{Kind: kind, Err: err})
	}
	res.Files = files
	log.Info().Int("files", len(files)).Msg("record files discovered")

	for _, f := range files {
		if err := s.process(fsys, f, tables); err != nil {
			return nil, s.fail(log, err)
		}
		log.Debug().Str("file", f.Name).Msg("record applied")
	}

	outputs, err := s.writeSummaries(outDir, tables)
	if err != nil {
		return nil, s.fail(log, err)
	}
	res.Outputs = outputs

	log.Info().Int("files", len(files)).Strs("outputs", outputs).Msg("run done")
	return res, nil
}

func (s *Service) loadTables(fsys fs.FS, log zerolog.Logger) ([]*master.Table, error) {
	tables := make([]*master.Table, 0, len(s.defs))
	for _, def := range s.defs {
		t, err := master.Load(fsys, def)
		if err != nil {
			return nil, loadError(def, err)
		}
		for _, code := range t.Duplicates() {
			log.Warn().Str("table", def.Name).Str("code", code).Msg("duplicate code in master file; later name wins")
		}
		log.Debug().Str("table", def.Name).Int("codes", t.Len()).Msg("master loaded")
		tables = append(tables, t)
	}
	return tables, nil
}

func loadError(def model.TableDef, err error) error {
	kind := KindUnknown
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindFileNotFound
	case errors.Is(err, master.ErrInvalidFormat):
		kind = KindInvalidFormat
	}
	return &Error{Kind: kind, File: def.MasterFile, Table: def.Name, Label: def.Label, Err: err}
}

func (s *Service) process(fsys fs.FS, f records.File, tables []*master.Table) error {
	lines, err := records.ReadLines(fsys, f.Name)
	if err != nil {
		return &Error{Kind: KindUnknown, File: f.Name, Err: err}
	}
	rec, err := Validate(f.Name, lines, tables)
	if err != nil {
		return err
	}
	return Apply(tables, rec, s.limit)
}

// writeSummaries stages every summary before replacing any existing file.
func (s *Service) writeSummaries(dir string, tables []*master.Table) ([]string, error) {
	staged := make([]*stagedSummary, 0, len(tables))
	for _, t := range tables {
		st, err := stageSummary(dir, t.Def().OutputFile, t)
		if err != nil {
			for _, prev := range staged {
				prev.discard()
			}
			return nil, err
		}
		staged = append(staged, st)
	}

	outputs := make([]string, 0, len(staged))
	for i, st := range staged {
		if err := st.commit(); err != nil {
			for _, rest := range staged[i+1:] {
				rest.discard()
			}
			return nil, err
		}
		outputs = append(outputs, st.path)
	}
	return outputs, nil
}

func (s *Service) fail(log zerolog.Logger, err error) error {
	log.Error().Err(err).Str("kind", KindOf(err).String()).Msg("run failed")
	return err
}
