package transform

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/assetorbit/engine/pkg/models/domain"
)

// UnsupportedSourceError reports a source identifier no transformer is
// registered for. Unlike bad row data, this is caller misuse and fails
// loudly.
type UnsupportedSourceError struct {
	Source domain.Source
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("source %q is not supported", e.Source)
}

// Registry is the uniform dispatch surface over all source transformers.
type Registry interface {
	// Sources lists the supported source identifiers, sorted.
	Sources() []domain.Source
	// IsSupported reports whether a transformer is registered for the source.
	IsSupported(src domain.Source) bool
	// TransformRow transforms a single row.
	TransformRow(src domain.Source, row *domain.RawRow) (domain.TransformationResult, error)
	// TransformBatch transforms rows independently, preserving input order.
	TransformBatch(ctx context.Context, src domain.Source, rows []*domain.RawRow) ([]domain.TransformationResult, error)
	// ColumnMappings returns the source's column-mapping template.
	ColumnMappings(src domain.Source) ([]domain.ColumnMapping, error)
	// Validate checks that the source's mandatory direct fields are non-empty.
	Validate(src domain.Source, fields domain.DirectFields) (domain.ValidationResult, error)
}

// Config tunes the registry.
type Config struct {
	// Workers bounds the batch worker pool. Zero means a small default.
	Workers int
}

const defaultWorkers = 4

type registry struct {
	transformers map[domain.Source]Transformer
	workers      int
}

// NewRegistry builds a registry over a fixed set of transformers.
func NewRegistry(cfg Config, transformers ...Transformer) (Registry, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	r := &registry{
		transformers: make(map[domain.Source]Transformer, len(transformers)),
		workers:      workers,
	}
	for _, t := range transformers {
		if t == nil {
			return nil, fmt.Errorf("transformer cannot be nil")
		}
		src := t.Source()
		if _, exists := r.transformers[src]; exists {
			return nil, fmt.Errorf("source %q is already registered", src)
		}
		r.transformers[src] = t
	}
	return r, nil
}

func (r *registry) Sources() []domain.Source {
	sources := maps.Keys(r.transformers)
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

func (r *registry) IsSupported(src domain.Source) bool {
	_, ok := r.transformers[src]
	return ok
}

func (r *registry) TransformRow(src domain.Source, row *domain.RawRow) (domain.TransformationResult, error) {
	t, ok := r.transformers[src]
	if !ok {
		return domain.TransformationResult{}, &UnsupportedSourceError{Source: src}
	}
	return t.Transform(row), nil
}

func (r *registry) TransformBatch(
	ctx context.Context,
	src domain.Source,
	rows []*domain.RawRow,
) ([]domain.TransformationResult, error) {
	t, ok := r.transformers[src]
	if !ok {
		return nil, &UnsupportedSourceError{Source: src}
	}

	results := make([]domain.TransformationResult, len(rows))
	if len(rows) == 0 {
		return results, nil
	}

	workers := r.workers
	if workers > len(rows) {
		workers = len(rows)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = t.Transform(rows[i])
			}
		}()
	}

feed:
	for i := range rows {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *registry) ColumnMappings(src domain.Source) ([]domain.ColumnMapping, error) {
	t, ok := r.transformers[src]
	if !ok {
		return nil, &UnsupportedSourceError{Source: src}
	}
	return t.ColumnMappings(), nil
}

func (r *registry) Validate(src domain.Source, fields domain.DirectFields) (domain.ValidationResult, error) {
	t, ok := r.transformers[src]
	if !ok {
		return domain.ValidationResult{}, &UnsupportedSourceError{Source: src}
	}

	result := domain.ValidationResult{IsValid: true}
	for _, name := range t.MandatoryFields() {
		value, known := fields.Field(name)
		if !known {
			result.IsValid = false
			result.Errors = append(result.Errors, fmt.Sprintf("unknown mandatory field %q", name))
			continue
		}
		if value == "" {
			result.IsValid = false
			result.Errors = append(result.Errors, fmt.Sprintf("field %q is required for source %s", name, src))
		}
	}
	return result, nil
}
