package transform

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetorbit/engine/pkg/models/domain"
)

// stubTransformer copies the row's "tag" column into the asset tag and warns
// when it is missing, which is enough to observe batch behavior.
type stubTransformer struct {
	source domain.Source
}

func (s *stubTransformer) Source() domain.Source { return s.source }

func (s *stubTransformer) Transform(row *domain.RawRow) domain.TransformationResult {
	res := NewResult(s.source)
	res.DirectFields.AssetTag = row.Get("tag")
	if res.DirectFields.AssetTag == "" {
		res.Warn("tag is missing")
	}
	return res.Done()
}

func (s *stubTransformer) ColumnMappings() []domain.ColumnMapping {
	return []domain.ColumnMapping{
		{ExternalColumn: "tag", TargetField: domain.FieldAssetTag, TargetKind: domain.MappingKindDirect},
	}
}

func (s *stubTransformer) MandatoryFields() []string {
	return []string{domain.FieldAssetTag}
}

func newTestRegistry(t *testing.T) Registry {
	t.Helper()
	r, err := NewRegistry(Config{Workers: 4},
		&stubTransformer{source: "ALPHA"},
		&stubTransformer{source: "BETA"},
	)
	require.NoError(t, err)
	return r
}

func TestNewRegistry_RejectsDuplicateSource(t *testing.T) {
	_, err := NewRegistry(Config{},
		&stubTransformer{source: "ALPHA"},
		&stubTransformer{source: "ALPHA"},
	)
	assert.Error(t, err)
}

func TestRegistry_Sources(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, []domain.Source{"ALPHA", "BETA"}, r.Sources())
	assert.True(t, r.IsSupported("ALPHA"))
	assert.False(t, r.IsSupported("GAMMA"))
}

func TestRegistry_TransformRow_UnsupportedSource(t *testing.T) {
	r := newTestRegistry(t)

	row := domain.RawRowFrom(map[string]string{"tag": "A-1"})
	_, err := r.TransformRow("GAMMA", row)
	require.Error(t, err)

	var unsupported *UnsupportedSourceError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, domain.Source("GAMMA"), unsupported.Source)
}

func TestRegistry_TransformBatch_PreservesOrderAndIndependence(t *testing.T) {
	r := newTestRegistry(t)

	// Row 42 is corrupt; the other 99 must be untouched.
	rows := make([]*domain.RawRow, 100)
	for i := range rows {
		if i == 42 {
			rows[i] = domain.RawRowFrom(map[string]string{})
			continue
		}
		rows[i] = domain.RawRowFrom(map[string]string{"tag": fmt.Sprintf("A-%d", i)})
	}

	results, err := r.TransformBatch(context.Background(), "ALPHA", rows)
	require.NoError(t, err)
	require.Len(t, results, 100)

	for i, res := range results {
		if i == 42 {
			assert.Empty(t, res.DirectFields.AssetTag)
			assert.NotEmpty(t, res.ValidationErrors)
			continue
		}
		assert.Equal(t, fmt.Sprintf("A-%d", i), res.DirectFields.AssetTag, "row %d out of order", i)
		assert.Empty(t, res.ValidationErrors, "row %d polluted by corrupt neighbor", i)
	}
}

func TestRegistry_TransformBatch_UnsupportedSource(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.TransformBatch(context.Background(), "GAMMA", nil)
	var unsupported *UnsupportedSourceError
	assert.True(t, errors.As(err, &unsupported))
}

func TestRegistry_TransformBatch_Cancellation(t *testing.T) {
	r := newTestRegistry(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := []*domain.RawRow{domain.RawRowFrom(map[string]string{"tag": "A-1"})}
	_, err := r.TransformBatch(ctx, "ALPHA", rows)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_ColumnMappings(t *testing.T) {
	r := newTestRegistry(t)

	mappings, err := r.ColumnMappings("ALPHA")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "tag", mappings[0].ExternalColumn)
	assert.Equal(t, domain.FieldAssetTag, mappings[0].TargetField)

	_, err = r.ColumnMappings("GAMMA")
	assert.Error(t, err)
}

func TestRegistry_Validate(t *testing.T) {
	r := newTestRegistry(t)

	t.Run("valid fields", func(t *testing.T) {
		got, err := r.Validate("ALPHA", domain.DirectFields{AssetTag: "A-1"})
		require.NoError(t, err)
		assert.True(t, got.IsValid)
		assert.Empty(t, got.Errors)
	})

	t.Run("missing mandatory field", func(t *testing.T) {
		got, err := r.Validate("ALPHA", domain.DirectFields{})
		require.NoError(t, err)
		assert.False(t, got.IsValid)
		require.Len(t, got.Errors, 1)
		assert.Contains(t, got.Errors[0], domain.FieldAssetTag)
	})

	t.Run("unsupported source", func(t *testing.T) {
		_, err := r.Validate("GAMMA", domain.DirectFields{})
		assert.Error(t, err)
	})
}
