// Package automator turns a spreadsheet structure and a column-to-cell mapping
// into a generated automation script.
//
// A Session owns all mutable state of one user session: the loaded workbook,
// the configuration, the mappings, and the generation workflow. The column
// list is recomputed on every change to the workbook or the selected source
// sheet, so it is never stale.
package automator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/columns"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/grid"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/mapping"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/prompt"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/workflow"
)

// Session is a single-user editing session. Its methods are not safe for
// concurrent use, except that the embedded workflow may resolve in the background.
type Session struct {
	logger *slog.Logger
	ids    mapping.IDGenerator

	fileName string
	workbook *grid.Workbook
	columns  []models.ColumnDef

	config   models.Configuration
	mappings mapping.List

	workflow *workflow.Workflow
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	logger    *slog.Logger
	ids       mapping.IDGenerator
	observers []workflow.Observer
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithIDGenerator overrides the mapping id source.
func WithIDGenerator(gen mapping.IDGenerator) Option {
	return func(o *sessionOptions) {
		o.ids = gen
	}
}

// WithStateObserver registers an observer for workflow state transitions.
func WithStateObserver(obs workflow.Observer) Option {
	return func(o *sessionOptions) {
		o.observers = append(o.observers, obs)
	}
}

// NewSession creates a session seeded with the default configuration and
// example mappings.
func NewSession(gen workflow.Generator, opts ...Option) *Session {
	o := sessionOptions{logger: slog.Default(), ids: mapping.NewID}
	for _, opt := range opts {
		opt(&o)
	}

	wfOpts := []workflow.Option{workflow.WithLogger(o.logger)}
	for _, obs := range o.observers {
		wfOpts = append(wfOpts, workflow.WithObserver(obs))
	}

	return &Session{
		logger:   o.logger,
		ids:      o.ids,
		columns:  []models.ColumnDef{},
		config:   mapping.DefaultConfiguration(),
		mappings: mapping.DefaultList(),
		workflow: workflow.New(gen, wfOpts...),
	}
}

// LoadFile reads and decodes a spreadsheet from disk. See Load.
func (s *Session) LoadFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return NewDecodeError(filepath.Base(path), err)
	}
	return s.Load(filepath.Base(path), data)
}

// Load decodes uploaded bytes. On success the workbook replaces the previous
// one and its first sheet becomes the source sheet. On failure a *DecodeError
// is returned and the session is left unchanged.
func (s *Session) Load(fileName string, data []byte) error {
	wb, err := grid.Decode(fileName, data)
	if err != nil {
		s.logger.Warn("failed to parse file", "file", fileName, "error", err)
		return NewDecodeError(fileName, err)
	}

	s.fileName = fileName
	s.workbook = wb
	if names := wb.SheetNames(); len(names) > 0 {
		s.config.SourceSheetName = names[0]
	}
	s.refreshColumns()

	s.logger.Info("workbook loaded", "file", fileName, "sheets", len(wb.SheetNames()), "source_sheet", s.config.SourceSheetName)
	return nil
}

// FileName returns the name of the loaded file, or "".
func (s *Session) FileName() string {
	return s.fileName
}

// SheetNames returns the loaded workbook's sheet names, offered as suggestions
// for the source and template sheet fields.
func (s *Session) SheetNames() []string {
	return s.workbook.SheetNames()
}

// Columns returns the columns of the selected source sheet.
func (s *Session) Columns() []models.ColumnDef {
	out := make([]models.ColumnDef, len(s.columns))
	copy(out, s.columns)
	return out
}

// Inspection returns the structural preview of the loaded workbook.
func (s *Session) Inspection() models.Inspection {
	names := s.SheetNames()
	if names == nil {
		names = []string{}
	}
	return models.Inspection{
		FileName:   s.fileName,
		SheetNames: names,
		SheetName:  s.config.SourceSheetName,
		Columns:    s.Columns(),
	}
}

// Configuration returns the current configuration.
func (s *Session) Configuration() models.Configuration {
	return s.config
}

// SetConfiguration replaces the configuration.
func (s *Session) SetConfiguration(cfg models.Configuration) {
	sheetChanged := cfg.SourceSheetName != s.config.SourceSheetName
	s.config = cfg
	if sheetChanged {
		s.refreshColumns()
	}
}

// UpdateConfiguration applies fn to a copy of the configuration and stores the result.
func (s *Session) UpdateConfiguration(fn func(*models.Configuration)) {
	cfg := s.config
	fn(&cfg)
	s.SetConfiguration(cfg)
}

// Mappings returns the mappings in order.
func (s *Session) Mappings() []models.Mapping {
	out := make([]models.Mapping, len(s.mappings))
	copy(out, s.mappings)
	return out
}

// SetMappings replaces the mappings. Entries without an id receive a fresh one.
func (s *Session) SetMappings(ms []models.Mapping) {
	list := make(mapping.List, 0, len(ms))
	for _, m := range ms {
		if m.ID == "" || list.Contains(m.ID) {
			var added models.Mapping
			list, added = list.Append(s.ids)
			list = list.Update(added.ID, mapping.FieldSourceColumn, m.SourceColumn)
			list = list.Update(added.ID, mapping.FieldTargetCell, m.TargetCell)
			continue
		}
		list = append(list, m)
	}
	s.mappings = list
}

// AddMapping appends an empty mapping and returns it.
func (s *Session) AddMapping() models.Mapping {
	var m models.Mapping
	s.mappings, m = s.mappings.Append(s.ids)
	return m
}

// RemoveMapping removes the mapping with the given id, if present.
func (s *Session) RemoveMapping(id string) {
	s.mappings = s.mappings.Remove(id)
}

// UpdateMapping sets one field of the mapping with the given id, if present.
func (s *Session) UpdateMapping(id string, field mapping.Field, value string) {
	s.mappings = s.mappings.Update(id, field, value)
}

// Definition returns the configuration and mappings in their on-disk form.
func (s *Session) Definition() *models.Definition {
	return &models.Definition{
		Version:       mapping.DefinitionVersion,
		Workbook:      s.fileName,
		Configuration: s.config,
		Mappings:      s.Mappings(),
	}
}

// ApplyDefinition replaces the configuration and mappings from def.
func (s *Session) ApplyDefinition(def *models.Definition) {
	s.SetConfiguration(def.Configuration)
	s.SetMappings(def.Mappings)
}

// Request returns the generation request for the current configuration and mappings.
func (s *Session) Request() prompt.Request {
	return prompt.Build(s.config, s.mappings)
}

// Generate starts a generation from the current configuration and mappings.
// Any previous result is cleared immediately.
func (s *Session) Generate(ctx context.Context) *workflow.Run {
	return s.workflow.Start(ctx, s.config, s.mappings)
}

// State returns the workflow state.
func (s *Session) State() workflow.State {
	return s.workflow.State()
}

// ResetGeneration returns the workflow to Idle, discarding any outstanding run.
func (s *Session) ResetGeneration() {
	s.workflow.Reset()
}

func (s *Session) refreshColumns() {
	s.columns = columns.FromWorkbook(s.workbook, s.config.SourceSheetName)
	s.logger.Debug("columns refreshed", "sheet", s.config.SourceSheetName, "columns", len(s.columns))
}
