package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Step is a state of the import dialog.
type Step int

const (
	StepUpload Step = iota
	StepMapColumns
	StepPreview
	StepImporting
	StepClosed
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepMapColumns:
		return "map-columns"
	case StepPreview:
		return "preview"
	case StepImporting:
		return "importing"
	case StepClosed:
		return "closed"
	}
	return "unknown"
}

var ErrBadTransition = errors.New("invalid import step transition")

// Session drives the linear import flow
// Upload -> MapColumns -> Preview -> Importing -> Closed, with Back
// allowed from Preview and MapColumns. No transition skips a step and
// closing discards all in-memory state. Each session owns its own batch;
// nothing is shared between sessions.
type Session struct {
	step     Step
	doc      *Document
	mapping  Mapping
	resolver *Resolver
	batch    *Batch
	logger   *log.Logger
}

// NewSession opens a fresh dialog at the upload step.
func NewSession(rs *Resolver, logger *log.Logger) *Session {
	return &Session{
		step:     StepUpload,
		mapping:  NewMapping(),
		resolver: rs,
		logger:   logger,
	}
}

// Step returns the current dialog state.
func (s *Session) Step() Step {
	return s.step
}

// Headers exposes the parsed header list for the mapping step.
func (s *Session) Headers() []string {
	if s.doc == nil {
		return nil
	}
	return s.doc.Headers
}

// Mapping returns the in-progress column mapping.
func (s *Session) Mapping() *Mapping {
	return &s.mapping
}

// Batch returns the editable preview batch, nil before the preview step.
func (s *Session) Batch() *Batch {
	return s.batch
}

// Upload parses the supplied file and advances to the mapping step.
// Parse failures are reported and the dialog stays on the upload step.
func (s *Session) Upload(data []byte, filename string) error {
	if s.step != StepUpload {
		return fmt.Errorf("%w: upload from %s", ErrBadTransition, s.step)
	}
	doc, err := ParseCSV(data, filename)
	if err != nil {
		s.logger.Warn("upload rejected", "file", filename, "error", err)
		return err
	}
	s.doc = doc
	s.step = StepMapColumns
	s.logger.Debug("file parsed", "file", filename, "headers", len(doc.Headers), "rows", len(doc.Rows))
	return nil
}

// ConfirmMapping validates the mapping and resolves every row, advancing
// to the preview step. It is the direct invocation point the upload
// dialog's "Next" control calls.
func (s *Session) ConfirmMapping() error {
	if s.step != StepMapColumns {
		return fmt.Errorf("%w: confirm mapping from %s", ErrBadTransition, s.step)
	}
	if !s.mapping.Complete() {
		return errors.New("amount and date columns must be mapped")
	}
	s.batch = NewBatch(s.doc, s.mapping, s.resolver)
	s.step = StepPreview
	return nil
}

// Back steps the dialog one step backwards. The preview batch is discarded
// when leaving the preview step; the parsed document is discarded when
// returning to upload.
func (s *Session) Back() error {
	switch s.step {
	case StepPreview:
		s.batch = nil
		s.step = StepMapColumns
		return nil
	case StepMapColumns:
		s.doc = nil
		s.step = StepUpload
		return nil
	default:
		return fmt.Errorf("%w: back from %s", ErrBadTransition, s.step)
	}
}

// Import runs validate + commit for the previewed batch. The session sits
// in the importing state for the duration and closes on completion, valid
// or not the outcome of individual rows.
func (s *Session) Import(ctx context.Context, backend Backend) (Outcome, error) {
	if s.step != StepPreview {
		return Outcome{}, fmt.Errorf("%w: import from %s", ErrBadTransition, s.step)
	}
	s.step = StepImporting
	out, err := Commit(ctx, s.batch, backend, s.logger)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) || errors.Is(err, ErrNothingToImport) {
			// Hard stop before any submission: back to the preview so
			// the user can fix rows and retry.
			s.step = StepPreview
			return out, err
		}
	}
	s.Close()
	return out, err
}

// Close discards all in-memory state. Allowed from any step.
func (s *Session) Close() {
	s.doc = nil
	s.batch = nil
	s.mapping = NewMapping()
	s.step = StepClosed
}
