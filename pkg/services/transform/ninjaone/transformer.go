// Package ninjaone transforms NinjaOne endpoint-management exports. The
// agent reports memory and volume capacities in GiB with fractional values;
// those are rendered as whole-GB strings. Assignment is inferred from the
// last logged-in user.
package ninjaone

import (
	"strings"

	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/transform"
)

type Transformer struct{}

func New() *Transformer {
	return &Transformer{}
}

func (t *Transformer) Source() domain.Source {
	return domain.SourceNinjaOne
}

func (t *Transformer) MandatoryFields() []string {
	return []string{domain.FieldSerialNumber, domain.FieldModel}
}

func (t *Transformer) ColumnMappings() []domain.ColumnMapping {
	return []domain.ColumnMapping{
		{ExternalColumn: "Display Name", TargetField: domain.FieldAssetTag, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Serial Number", TargetField: domain.FieldSerialNumber, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "System Manufacturer", TargetField: domain.FieldMake, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "System Model", TargetField: domain.FieldModel, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Role", TargetField: domain.FieldAssetType, TargetKind: domain.MappingKindDirect},
		{ExternalColumn: "Last LoggedIn User", TargetField: "assignedUser", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "RAM", TargetField: "ram", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "Volumes", TargetField: "storage", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "OS Name", TargetField: "os", TargetKind: domain.MappingKindSpecification},
		{ExternalColumn: "Processor", TargetField: "cpu", TargetKind: domain.MappingKindSpecification},
	}
}

func (t *Transformer) Transform(row *domain.RawRow) domain.TransformationResult {
	res := transform.NewResult(domain.SourceNinjaOne)

	serial, _ := row.Lookup("Serial Number")
	if serial == "" {
		res.Warn("serial number is missing")
	}
	res.DirectFields.SerialNumber = serial

	// Device hostnames double as asset tags in endpoint exports.
	res.DirectFields.AssetTag, _ = row.Lookup("Display Name")
	if res.DirectFields.AssetTag == "" {
		res.Warn("display name is missing, no asset tag derived")
	}

	maker, _ := row.Lookup("System Manufacturer")
	model, _ := row.Lookup("System Model")
	if maker == "" && model != "" {
		if m, rest, ok := transform.SplitDeviceName(model); ok {
			maker, model = m, rest
		} else {
			res.Warn("unrecognized manufacturer in model %q", model)
		}
	}
	res.DirectFields.Make = maker
	res.DirectFields.Model = model
	if model == "" {
		res.Warn("system model is missing")
	}

	res.DirectFields.AssetType = deviceType(row.Get("Role"))

	if ram, ok := row.Lookup("RAM"); ok && ram != "" {
		if normalized, ok := transform.NormalizeCapacity(ram); ok {
			res.Spec("ram", normalized)
		} else {
			res.Warn("unparseable RAM value %q", ram)
		}
	}
	if vol, ok := row.Lookup("Volumes"); ok && vol != "" {
		if normalized, ok := transform.NormalizeCapacity(vol); ok {
			res.Spec("storage", normalized)
		} else {
			res.Warn("unparseable volume capacity %q", vol)
		}
	}

	res.Spec("os", row.Get("OS Name"))
	res.Spec("cpu", row.Get("Processor"))

	user := row.Get("Last LoggedIn User")
	res.Spec("assignedUser", strings.TrimSpace(user))
	res.DirectFields.Status = transform.InferStatus(user)

	return res.Done()
}

// deviceType maps the agent's role enumeration to a canonical asset type.
// Workstation endpoints without an explicit role default to laptops.
func deviceType(role string) string {
	upper := strings.ToUpper(role)
	switch {
	case strings.Contains(upper, "SERVER"):
		return domain.AssetTypeOther
	case strings.Contains(upper, "DESKTOP"), strings.Contains(upper, "WORKSTATION"):
		return domain.AssetTypeDesktop
	case strings.Contains(upper, "LAPTOP"), upper == "":
		return domain.AssetTypeLaptop
	}
	return domain.AssetTypeOther
}

var _ transform.Transformer = (*Transformer)(nil)
