package transform

import (
	"github.com/assetorbit/engine/pkg/models/domain"
)

// Transformer converts raw rows of one external export format into canonical
// asset records. Implementations are pure: no I/O, no shared state, and they
// never fail on malformed input. Problems degrade to omitted fields plus
// entries in the result's ValidationErrors.
type Transformer interface {
	// Source is the fixed identifier stamped on every result's
	// directFields.source.
	Source() domain.Source

	// Transform maps one raw row to a best-effort canonical record.
	Transform(row *domain.RawRow) domain.TransformationResult

	// ColumnMappings is the ordered mapping template proposed to the
	// interactive column-mapping UI.
	ColumnMappings() []domain.ColumnMapping

	// MandatoryFields names the direct fields this source requires to be
	// non-empty before an import commits.
	MandatoryFields() []string
}

// Result is a TransformationResult under construction. Transformers use it
// to accumulate fields, specifications and validation notes.
type Result struct {
	domain.TransformationResult
}

func NewResult(source domain.Source) *Result {
	return &Result{
		TransformationResult: domain.TransformationResult{
			DirectFields:   domain.DirectFields{Source: string(source)},
			Specifications: make(map[string]string),
		},
	}
}

// Spec records a specification value, skipping empties.
func (r *Result) Spec(key, value string) {
	if value != "" {
		r.Specifications[key] = value
	}
}

// Warn appends a validation note.
func (r *Result) Warn(format string, args ...any) {
	r.ValidationErrors = appendf(r.ValidationErrors, format, args...)
}

// Done returns the accumulated result.
func (r *Result) Done() domain.TransformationResult {
	return r.TransformationResult
}
