// Package telus transforms Telus carrier billing exports. Carrier rows
// identify devices by IMEI and free-text device name; make, model, type and
// storage are decomposed from the name. Rows without an asset tag get one
// synthesized deterministically from the subscriber name, so re-importing
// the same export never mints a new tag.
package telus

import (
	"strings"

	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/transform"
)

const (
	carrierName = "Telus"
	tagPrefix   = "TEL-"
)

type Transformer struct{}

func New() *Transformer {
	return &Transformer{}
}

func (t *Transformer) Source() domain.Source {
	return domain.SourceTelus
}

func (t *Transformer) MandatoryFields() []string {
	return []string{domain.FieldSerialNumber, domain.FieldModel}
}

func (t *Transformer) ColumnMappings() []domain.ColumnMapping {
	return []domain.ColumnMapping{
		{ExternalColumn: "Device Name", TargetField: domain.FieldModel, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Asset Tag", TargetField: domain.FieldAssetTag, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "IMEI", TargetField: "imei", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "Phone Number", TargetField: "phoneNumber", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "Subscriber Name", TargetField: "assignedUser", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "BAN", TargetField: "ban", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "Rate Plan", TargetField: "ratePlan", TargetKind: domain.MappingKindSpecification},
	}
}

func (t *Transformer) Transform(row *domain.RawRow) domain.TransformationResult {
	res := transform.NewResult(domain.SourceTelus)
	res.Spec("carrier", carrierName)

	name, _ := row.Lookup("Device Name")
	if name == "" {
		res.Warn("device name is missing")
	} else {
		maker, model, ok := transform.SplitDeviceName(name)
		if !ok {
			res.Warn("unrecognized manufacturer in device name %q", name)
		}
		res.DirectFields.Make = maker
		res.DirectFields.Model = model
		res.DirectFields.AssetType = deviceType(name)
		if storage, ok := transform.StorageFromName(name); ok {
			res.Spec("storage", storage)
		}
	}

	imei := transform.Digits(row.Get("IMEI"))
	if imei == "" {
		res.Warn("IMEI is missing")
	} else if len(imei) < 14 || len(imei) > 16 {
		res.Warn("IMEI %q has unexpected length %d", imei, len(imei))
		imei = ""
	}
	res.Spec("imei", imei)
	// Carrier exports have no serial number; the IMEI is the device identity.
	res.DirectFields.SerialNumber = imei

	phone := transform.Digits(row.Get("Phone Number"))
	if phone == "" {
		res.Warn("phone number is missing")
	}
	res.Spec("phoneNumber", phone)

	res.Spec("ban", row.Get("BAN"))
	res.Spec("ratePlan", row.Get("Rate Plan"))

	subscriber := row.Get("Subscriber Name")
	res.Spec("assignedUser", subscriber)
	res.DirectFields.Status = transform.InferStatus(subscriber)

	res.DirectFields.AssetTag = row.Get("Asset Tag")
	if res.DirectFields.AssetTag == "" {
		if tag, ok := synthesizeTag(subscriber, phone); ok {
			res.DirectFields.AssetTag = tag
		} else {
			res.Warn("no asset tag and nothing to derive one from")
		}
	}

	return res.Done()
}

// synthesizeTag derives a stable asset tag from the subscriber name, falling
// back to the phone number. Same input, same tag.
func synthesizeTag(subscriber, phone string) (string, bool) {
	if slug := transform.TagSlug(subscriber); slug != "" {
		return tagPrefix + slug, true
	}
	if phone != "" {
		return tagPrefix + phone, true
	}
	return "", false
}

// deviceType distinguishes tablets and wearables from the phone default.
// Markers match whole name tokens; "PORTABLE" must not read as a tablet.
func deviceType(name string) string {
	for _, token := range strings.Fields(strings.ToUpper(name)) {
		switch {
		case strings.HasPrefix(token, "IPAD"), token == "TAB", token == "TABLET":
			return domain.AssetTypeTablet
		case strings.HasPrefix(token, "WATCH"):
			return domain.AssetTypeOther
		}
	}
	return domain.AssetTypePhone
}

var _ transform.Transformer = (*Transformer)(nil)
