package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/assetorbit/engine/pkg/models/domain"
)

func TestResolve(t *testing.T) {
	bag := domain.NewFieldBag(map[string]any{
		"assetType": "LAPTOP",
		"model":     "",
		"specifications": map[string]any{
			"ram":     "16 GB",
			"storage": "512 GB",
		},
	})

	t.Run("top-level field", func(t *testing.T) {
		v, ok := Resolve(bag, "assetType")
		assert.True(t, ok)
		assert.Equal(t, "LAPTOP", v)
	})

	t.Run("empty string is present, not absent", func(t *testing.T) {
		v, ok := Resolve(bag, "model")
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("specification key", func(t *testing.T) {
		v, ok := Resolve(bag, "specifications.ram")
		assert.True(t, ok)
		assert.Equal(t, "16 GB", v)
	})

	t.Run("missing top-level field", func(t *testing.T) {
		_, ok := Resolve(bag, "serialNumber")
		assert.False(t, ok)
	})

	t.Run("missing specification", func(t *testing.T) {
		_, ok := Resolve(bag, "specifications.imei")
		assert.False(t, ok)
	})

	t.Run("dotted path under another prefix", func(t *testing.T) {
		_, ok := Resolve(bag, "details.ram")
		assert.False(t, ok)
	})

	t.Run("nesting deeper than one level", func(t *testing.T) {
		_, ok := Resolve(bag, "specifications.ram.size")
		assert.False(t, ok)
	})

	t.Run("empty path", func(t *testing.T) {
		_, ok := Resolve(bag, "")
		assert.False(t, ok)
	})
}

func TestFieldBagFromResult_OmitsEmptyFields(t *testing.T) {
	res := domain.TransformationResult{
		DirectFields: domain.DirectFields{
			AssetTag: "BGC-001",
			Source:   string(domain.SourceExcel),
		},
		Specifications: map[string]string{"ram": "16 GB"},
	}

	bag := domain.FieldBagFromResult(res)

	_, ok := Resolve(bag, "serialNumber")
	assert.False(t, ok, "empty direct field must resolve as absent")

	v, ok := Resolve(bag, "assetTag")
	assert.True(t, ok)
	assert.Equal(t, "BGC-001", v)

	v, ok = Resolve(bag, "specifications.ram")
	assert.True(t, ok)
	assert.Equal(t, "16 GB", v)
}
