package domain

// SpecificationsKey is the reserved top-level name of the open attribute bag.
const SpecificationsKey = "specifications"

// FieldBag is an asset's resolved field set as seen by the rule engine: a
// flat set of top-level values plus the specifications sub-bag. Absence is
// distinct from empty string.
type FieldBag struct {
	fields map[string]any
	specs  map[string]any
}

// NewFieldBag builds a bag from arbitrary resolved values. A top-level
// "specifications" entry of map type becomes the sub-bag; any other shape
// under that key is ignored.
func NewFieldBag(fields map[string]any) FieldBag {
	bag := FieldBag{
		fields: make(map[string]any, len(fields)),
		specs:  make(map[string]any),
	}
	for name, value := range fields {
		if name == SpecificationsKey {
			switch sub := value.(type) {
			case map[string]any:
				for k, v := range sub {
					bag.specs[k] = v
				}
			case map[string]string:
				for k, v := range sub {
					bag.specs[k] = v
				}
			}
			continue
		}
		bag.fields[name] = value
	}
	return bag
}

// FieldBagFromResult projects a transformation result into the field set the
// rule engine classifies on. Fields the source never produced stay absent.
func FieldBagFromResult(res TransformationResult) FieldBag {
	bag := FieldBag{
		fields: make(map[string]any),
		specs:  make(map[string]any, len(res.Specifications)),
	}
	direct := map[string]string{
		FieldAssetTag:        res.DirectFields.AssetTag,
		FieldSerialNumber:    res.DirectFields.SerialNumber,
		FieldModel:           res.DirectFields.Model,
		FieldMake:            res.DirectFields.Make,
		FieldAssetType:       res.DirectFields.AssetType,
		FieldCondition:       res.DirectFields.Condition,
		FieldStatus:          res.DirectFields.Status,
		FieldSource:          res.DirectFields.Source,
		FieldAssignedToAadID: res.DirectFields.AssignedToAadID,
	}
	for name, value := range direct {
		if value != "" {
			bag.fields[name] = value
		}
	}
	for key, value := range res.Specifications {
		bag.specs[key] = value
	}
	return bag
}

// Field returns a top-level value.
func (b FieldBag) Field(name string) (any, bool) {
	v, ok := b.fields[name]
	return v, ok
}

// Specification returns a value from the specifications sub-bag.
func (b FieldBag) Specification(key string) (any, bool) {
	v, ok := b.specs[key]
	return v, ok
}
