package domain

// Source identifies an external inventory export format.
type Source string

const (
	SourceNinjaOne Source = "NINJAONE"
	SourceTelus    Source = "TELUS"
	SourceExcel    Source = "EXCEL"
)

// Canonical direct-field names, usable as rule source fields.
const (
	FieldAssetTag        = "assetTag"
	FieldSerialNumber    = "serialNumber"
	FieldModel           = "model"
	FieldMake            = "make"
	FieldAssetType       = "assetType"
	FieldCondition       = "condition"
	FieldStatus          = "status"
	FieldSource          = "source"
	FieldAssignedToAadID = "assignedToAadId"
)

// Asset statuses produced by transformers.
const (
	StatusAssigned    = "ASSIGNED"
	StatusAvailable   = "AVAILABLE"
	StatusMaintenance = "MAINTENANCE"
	StatusRetired     = "RETIRED"
)

// Asset types produced by transformers.
const (
	AssetTypeLaptop  = "LAPTOP"
	AssetTypeDesktop = "DESKTOP"
	AssetTypePhone   = "PHONE"
	AssetTypeTablet  = "TABLET"
	AssetTypeOther   = "OTHER"
)

// DirectFields holds the canonical asset attributes a transformer can fill.
// Empty string means the source did not provide the field.
type DirectFields struct {
	AssetTag        string
	SerialNumber    string
	Model           string
	Make            string
	AssetType       string
	Condition       string
	Status          string
	Source          string
	AssignedToAadID string
}

// Field returns the value of a canonical field by name, and whether the name
// is a known direct field at all.
func (f DirectFields) Field(name string) (string, bool) {
	switch name {
	case FieldAssetTag:
		return f.AssetTag, true
	case FieldSerialNumber:
		return f.SerialNumber, true
	case FieldModel:
		return f.Model, true
	case FieldMake:
		return f.Make, true
	case FieldAssetType:
		return f.AssetType, true
	case FieldCondition:
		return f.Condition, true
	case FieldStatus:
		return f.Status, true
	case FieldSource:
		return f.Source, true
	case FieldAssignedToAadID:
		return f.AssignedToAadID, true
	}
	return "", false
}

// TransformationResult is the outcome of transforming one raw row. Validation
// errors are advisory: a row with problems still carries its best-effort
// fields.
type TransformationResult struct {
	DirectFields     DirectFields
	Specifications   map[string]string
	ValidationErrors []string
}

// ValidationResult reports whether a set of direct fields satisfies a
// source's mandatory-field requirements.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// ColumnMappingKind says whether an external column lands on a direct field
// or inside the specifications bag.
type ColumnMappingKind string

const (
	MappingKindDirect        ColumnMappingKind = "direct"
	MappingKindSpecification ColumnMappingKind = "specification"
)

// ColumnMapping is one proposed default in a source's column-mapping
// template.
type ColumnMapping struct {
	ExternalColumn string
	TargetField    string
	TargetKind     ColumnMappingKind
}
