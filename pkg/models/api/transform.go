package api

// Source is a supported import source.
type Source struct {
	ID string `json:"id"`
}

// ColumnMapping is one proposed default for the interactive mapping UI.
type ColumnMapping struct {
	ExternalColumn string `json:"externalColumn"`
	TargetField    string `json:"targetField"`
	TargetKind     string `json:"targetKind"`
}

// TransformRequest carries raw export rows to transform.
type TransformRequest struct {
	Rows []map[string]string `json:"rows"`
}

// DirectFields mirrors the canonical asset attributes.
type DirectFields struct {
	AssetTag        string `json:"assetTag,omitempty"`
	SerialNumber    string `json:"serialNumber,omitempty"`
	Model           string `json:"model,omitempty"`
	Make            string `json:"make,omitempty"`
	AssetType       string `json:"assetType,omitempty"`
	Condition       string `json:"condition,omitempty"`
	Status          string `json:"status,omitempty"`
	Source          string `json:"source,omitempty"`
	AssignedToAadID string `json:"assignedToAadId,omitempty"`
}

// TransformationResult is the per-row transform outcome.
type TransformationResult struct {
	DirectFields     DirectFields      `json:"directFields"`
	Specifications   map[string]string `json:"specifications"`
	ValidationErrors []string          `json:"validationErrors"`
}

// TransformResponse returns one result per submitted row, in order.
type TransformResponse struct {
	Source  string                 `json:"source"`
	Results []TransformationResult `json:"results"`
}

// ValidateRequest asks whether the given direct fields satisfy a source's
// mandatory-field requirements.
type ValidateRequest struct {
	DirectFields DirectFields `json:"directFields"`
}

// ValidateResponse reports the mandatory-field check outcome.
type ValidateResponse struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors,omitempty"`
}
