package adapters

import (
	"maps"

	"github.com/assetorbit/engine/pkg/models/api"
	"github.com/assetorbit/engine/pkg/models/domain"
)

func MapTransformationResultDomainToApi(res domain.TransformationResult) api.TransformationResult {
	return api.TransformationResult{
		DirectFields: api.DirectFields{
			AssetTag:        res.DirectFields.AssetTag,
			SerialNumber:    res.DirectFields.SerialNumber,
			Model:           res.DirectFields.Model,
			Make:            res.DirectFields.Make,
			AssetType:       res.DirectFields.AssetType,
			Condition:       res.DirectFields.Condition,
			Status:          res.DirectFields.Status,
			Source:          res.DirectFields.Source,
			AssignedToAadID: res.DirectFields.AssignedToAadID,
		},
		Specifications:   maps.Clone(res.Specifications),
		ValidationErrors: append([]string{}, res.ValidationErrors...),
	}
}

func MapApiDirectFieldsToDomain(fields api.DirectFields) domain.DirectFields {
	return domain.DirectFields{
		AssetTag:        fields.AssetTag,
		SerialNumber:    fields.SerialNumber,
		Model:           fields.Model,
		Make:            fields.Make,
		AssetType:       fields.AssetType,
		Condition:       fields.Condition,
		Status:          fields.Status,
		Source:          fields.Source,
		AssignedToAadID: fields.AssignedToAadID,
	}
}

func MapColumnMappingDomainToApi(m domain.ColumnMapping) api.ColumnMapping {
	return api.ColumnMapping{
		ExternalColumn: m.ExternalColumn,
		TargetField:    m.TargetField,
		TargetKind:     string(m.TargetKind),
	}
}

func MapValidationResultDomainToApi(v domain.ValidationResult) api.ValidateResponse {
	return api.ValidateResponse{
		IsValid: v.IsValid,
		Errors:  append([]string{}, v.Errors...),
	}
}
