package rules

import (
	"strings"

	"github.com/assetorbit/engine/pkg/models/domain"
)

// Resolve looks up a dotted rule field path in an asset's field bag. A bare
// name hits the top-level fields; "specifications.<key>" hits the sub-bag.
// Anything deeper, or a dotted path under any other prefix, is absent.
func Resolve(bag domain.FieldBag, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	if !strings.Contains(path, ".") {
		return bag.Field(path)
	}

	parts := strings.SplitN(path, ".", 3)
	if len(parts) != 2 || parts[0] != domain.SpecificationsKey || parts[1] == "" {
		return nil, false
	}
	return bag.Specification(parts[1])
}
