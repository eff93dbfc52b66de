// Package excel transforms rows from the bulk-upload spreadsheet template.
// Headers are near-canonical, so most work is normalizing enumerations and
// capacities. Unlike agent and carrier sources, the template carries an
// explicit status column which takes precedence over assignment inference.
package excel

import (
	"strings"

	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/transform"
)

var statusAliases = map[string]string{
	"assigned":    domain.StatusAssigned,
	"deployed":    domain.StatusAssigned,
	"in use":      domain.StatusAssigned,
	"available":   domain.StatusAvailable,
	"in stock":    domain.StatusAvailable,
	"spare":       domain.StatusAvailable,
	"maintenance": domain.StatusMaintenance,
	"repair":      domain.StatusMaintenance,
	"retired":     domain.StatusRetired,
	"disposed":    domain.StatusRetired,
}

var conditionAliases = map[string]string{
	"new":       "NEW",
	"good":      "GOOD",
	"fair":      "FAIR",
	"poor":      "POOR",
	"used":      "GOOD",
	"damaged":   "POOR",
	"excellent": "NEW",
}

var assetTypeAliases = map[string]string{
	"laptop":   domain.AssetTypeLaptop,
	"notebook": domain.AssetTypeLaptop,
	"desktop":  domain.AssetTypeDesktop,
	"tower":    domain.AssetTypeDesktop,
	"phone":    domain.AssetTypePhone,
	"mobile":   domain.AssetTypePhone,
	"tablet":   domain.AssetTypeTablet,
	"other":    domain.AssetTypeOther,
}

type Transformer struct{}

func New() *Transformer {
	return &Transformer{}
}

func (t *Transformer) Source() domain.Source {
	return domain.SourceExcel
}

func (t *Transformer) MandatoryFields() []string {
	return []string{domain.FieldAssetTag, domain.FieldSerialNumber}
}

func (t *Transformer) ColumnMappings() []domain.ColumnMapping {
	return []domain.ColumnMapping{
		{ExternalColumn: "Asset Tag", TargetField: domain.FieldAssetTag, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Serial Number", TargetField: domain.FieldSerialNumber, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Make", TargetField: domain.FieldMake, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Model", TargetField: domain.FieldModel, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Type", TargetField: domain.FieldAssetType, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Condition", TargetField: domain.FieldCondition, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Status", TargetField: domain.FieldStatus, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Assigned To AAD ID", TargetField: domain.FieldAssignedToAadID, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "RAM", TargetField: "ram", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "Storage", TargetField: "storage", TargetKind: domain.MappingKindSpecification},
	}
}

func (t *Transformer) Transform(row *domain.RawRow) domain.TransformationResult {
	res := transform.NewResult(domain.SourceExcel)

	res.DirectFields.AssetTag = row.Get("Asset Tag")
	if res.DirectFields.AssetTag == "" {
		res.Warn("asset tag is missing")
	}
	res.DirectFields.SerialNumber = row.Get("Serial Number")
	if res.DirectFields.SerialNumber == "" {
		res.Warn("serial number is missing")
	}

	maker := row.Get("Make")
	model := row.Get("Model")
	if maker == "" && model != "" {
		if m, rest, ok := transform.SplitDeviceName(model); ok {
			maker, model = m, rest
		}
	}
	res.DirectFields.Make = maker
	res.DirectFields.Model = model

	if typ, ok := row.Lookup("Type"); ok && typ != "" {
		if canonical, ok := assetTypeAliases[strings.ToLower(typ)]; ok {
			res.DirectFields.AssetType = canonical
		} else {
			res.Warn("unknown asset type %q", typ)
		}
	}

	if cond, ok := row.Lookup("Condition"); ok && cond != "" {
		if canonical, ok := conditionAliases[strings.ToLower(cond)]; ok {
			res.DirectFields.Condition = canonical
		} else {
			res.Warn("unknown condition %q", cond)
		}
	}

	assigned := row.Get("Assigned To AAD ID")
	res.DirectFields.AssignedToAadID = assigned

	// The template's own status wins over assignment inference.
	if status, ok := row.Lookup("Status"); ok && status != "" {
		if canonical, ok := statusAliases[strings.ToLower(status)]; ok {
			res.DirectFields.Status = canonical
		} else {
			res.Warn("unknown status %q", status)
			res.DirectFields.Status = transform.InferStatus(assigned)
		}
	} else {
		res.DirectFields.Status = transform.InferStatus(assigned)
	}

	for _, spec := range []struct{ column, key string }{
		{"RAM", "ram"},
		{"Storage", "storage"},
	} {
		raw, ok := row.Lookup(spec.column)
		if !ok || raw == "" {
			continue
		}
		if normalized, ok := transform.NormalizeCapacity(raw); ok {
			res.Spec(spec.key, normalized)
		} else {
			res.Warn("unparseable %s value %q", strings.ToLower(spec.column), raw)
		}
	}

	return res.Done()
}

var _ transform.Transformer = (*Transformer)(nil)
