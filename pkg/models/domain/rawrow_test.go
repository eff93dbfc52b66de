package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawRow_Lookup(t *testing.T) {
	row := NewRawRow()
	row.Set("Serial Number", " 5CG1234XYZ ")
	row.Set("Número de Série", "BR-001")

	t.Run("exact name", func(t *testing.T) {
		v, ok := row.Lookup("Serial Number")
		assert.True(t, ok)
		assert.Equal(t, "5CG1234XYZ", v)
	})

	t.Run("header variants", func(t *testing.T) {
		for _, variant := range []string{"serial number", "SERIAL_NUMBER", "SerialNumber", "serial-number"} {
			v, ok := row.Lookup(variant)
			assert.True(t, ok, "variant %q", variant)
			assert.Equal(t, "5CG1234XYZ", v)
		}
	})

	t.Run("diacritics stripped", func(t *testing.T) {
		v, ok := row.Lookup("numero de serie")
		assert.True(t, ok)
		assert.Equal(t, "BR-001", v)
	})

	t.Run("absent column", func(t *testing.T) {
		_, ok := row.Lookup("IMEI")
		assert.False(t, ok)
		assert.Empty(t, row.Get("IMEI"))
	})
}

func TestRawRow_FirstColumnKeepsNormalizedHeader(t *testing.T) {
	row := NewRawRow()
	row.Set("Asset Tag", "BGC-001")
	row.Set("asset_tag", "BGC-002")

	v, ok := row.Lookup("ASSETTAG")
	assert.True(t, ok)
	assert.Equal(t, "BGC-001", v)
}

func TestRawRowFrom_Deterministic(t *testing.T) {
	columns := map[string]string{"b": "2", "a": "1", "c": "3"}

	first := RawRowFrom(columns)
	second := RawRowFrom(columns)
	assert.Equal(t, first.Columns(), second.Columns())
	assert.Equal(t, []string{"a", "b", "c"}, first.Columns())
	assert.Equal(t, 3, first.Len())
}
