package telus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetorbit/engine/pkg/models/domain"
)

func galaxyRow() *domain.RawRow {
	return domain.RawRowFrom(map[string]string{
		"Device Name":     "SAMSUNG GALAXY S23 128GB BLACK",
		"IMEI":            "356789104563217",
		"Phone Number":    "(604) 555-1234",
		"Subscriber Name": "John Smith",
		"BAN":             "12345678",
		"Rate Plan":       "Complete 60",
	})
}

func TestTransform_CarrierDeviceRow(t *testing.T) {
	tr := New()

	got := tr.Transform(galaxyRow())

	assert.Equal(t, string(domain.SourceTelus), got.DirectFields.Source)
	assert.Equal(t, "SAMSUNG", got.DirectFields.Make)
	assert.Equal(t, "GALAXY S23 128GB BLACK", got.DirectFields.Model)
	assert.Equal(t, domain.AssetTypePhone, got.DirectFields.AssetType)
	assert.Equal(t, domain.StatusAssigned, got.DirectFields.Status)
	assert.Equal(t, "356789104563217", got.Specifications["imei"])
	assert.Equal(t, "356789104563217", got.DirectFields.SerialNumber)
	assert.Equal(t, "6045551234", got.Specifications["phoneNumber"])
	assert.Equal(t, "128 GB", got.Specifications["storage"])
	assert.Equal(t, "Telus", got.Specifications["carrier"])
	assert.Equal(t, "12345678", got.Specifications["ban"])
	assert.Equal(t, "Complete 60", got.Specifications["ratePlan"])
	assert.Empty(t, got.ValidationErrors)
}

func TestTransform_TagSynthesisIsIdempotent(t *testing.T) {
	tr := New()

	first := tr.Transform(galaxyRow())
	second := tr.Transform(galaxyRow())

	require.NotEmpty(t, first.DirectFields.AssetTag)
	assert.Equal(t, "TEL-JOHNSMITH", first.DirectFields.AssetTag)
	assert.Equal(t, first.DirectFields.AssetTag, second.DirectFields.AssetTag)
}

func TestTransform_ExplicitTagWins(t *testing.T) {
	tr := New()

	row := galaxyRow()
	row.Set("Asset Tag", "BGC-4711")

	got := tr.Transform(row)
	assert.Equal(t, "BGC-4711", got.DirectFields.AssetTag)
}

func TestTransform_TagFallsBackToPhoneNumber(t *testing.T) {
	tr := New()

	row := domain.RawRowFrom(map[string]string{
		"Device Name":  "GOOGLE PIXEL 8 256GB",
		"IMEI":         "490154203237518",
		"Phone Number": "604-555-9999",
	})

	got := tr.Transform(row)
	assert.Equal(t, "TEL-6045559999", got.DirectFields.AssetTag)
	assert.Equal(t, domain.StatusAvailable, got.DirectFields.Status,
		"no subscriber means the line is unassigned")
}

func TestTransform_TabletAndWearableTypes(t *testing.T) {
	tr := New()

	got := tr.Transform(domain.RawRowFrom(map[string]string{
		"Device Name": "APPLE IPAD PRO 11 1TB",
		"IMEI":        "356789104563217",
	}))
	assert.Equal(t, domain.AssetTypeTablet, got.DirectFields.AssetType)

	got = tr.Transform(domain.RawRowFrom(map[string]string{
		"Device Name": "SAMSUNG GALAXY TAB S9 256GB",
		"IMEI":        "356789104563217",
	}))
	assert.Equal(t, domain.AssetTypeTablet, got.DirectFields.AssetType)

	got = tr.Transform(domain.RawRowFrom(map[string]string{
		"Device Name": "APPLE WATCH SERIES 9",
		"IMEI":        "356789104563217",
	}))
	assert.Equal(t, domain.AssetTypeOther, got.DirectFields.AssetType)

	// A marker embedded inside a longer word is not a type signal.
	got = tr.Transform(domain.RawRowFrom(map[string]string{
		"Device Name": "MOTOROLA PORTABLE X1 128GB",
		"IMEI":        "356789104563217",
	}))
	assert.Equal(t, domain.AssetTypePhone, got.DirectFields.AssetType)
}

func TestTransform_DegradesOnMalformedInput(t *testing.T) {
	tr := New()

	t.Run("missing device name", func(t *testing.T) {
		got := tr.Transform(domain.RawRowFrom(map[string]string{
			"IMEI":         "356789104563217",
			"Phone Number": "604-555-1234",
		}))
		assert.Empty(t, got.DirectFields.Model)
		assert.Contains(t, got.ValidationErrors, "device name is missing")
	})

	t.Run("unknown manufacturer passes through as model", func(t *testing.T) {
		got := tr.Transform(domain.RawRowFrom(map[string]string{
			"Device Name": "FAIRPHONE 5 256GB",
			"IMEI":        "356789104563217",
		}))
		assert.Empty(t, got.DirectFields.Make)
		assert.Equal(t, "FAIRPHONE 5 256GB", got.DirectFields.Model)
		require.NotEmpty(t, got.ValidationErrors)
		assert.Contains(t, got.ValidationErrors[0], "unrecognized manufacturer")
	})

	t.Run("IMEI with bad length", func(t *testing.T) {
		got := tr.Transform(domain.RawRowFrom(map[string]string{
			"Device Name": "SAMSUNG GALAXY S23",
			"IMEI":        "1234",
		}))
		assert.NotContains(t, got.Specifications, "imei")
		assert.Empty(t, got.DirectFields.SerialNumber)
		require.NotEmpty(t, got.ValidationErrors)
	})

	t.Run("empty row still yields a result", func(t *testing.T) {
		got := tr.Transform(domain.RawRowFrom(map[string]string{}))
		assert.Equal(t, string(domain.SourceTelus), got.DirectFields.Source)
		assert.NotEmpty(t, got.ValidationErrors)
	})
}
