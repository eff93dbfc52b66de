package transform

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/rules"
)

// knownManufacturers are the tokens a free-text device name is matched
// against, longest first so "ONEPLUS" wins over a hypothetical "ONE".
var knownManufacturers = []string{
	"MICROSOFT",
	"MOTOROLA",
	"SAMSUNG",
	"ONEPLUS",
	"GOOGLE",
	"HUAWEI",
	"LENOVO",
	"XIAOMI",
	"APPLE",
	"NOKIA",
	"IPHONE",
	"SONY",
	"DELL",
	"IPAD",
	"ASUS",
	"ACER",
	"TCL",
	"ZTE",
	"LG",
	"HP",
}

// appleAliases map device families that identify the maker without naming it.
var appleAliases = map[string]bool{"IPHONE": true, "IPAD": true}

// SplitDeviceName decomposes a free-text device/model string into make and
// model using the manufacturer token table. Unrecognized names report ok
// false, leaving the whole string as model.
func SplitDeviceName(name string) (maker, model string, ok bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", "", false
	}
	upper := strings.ToUpper(trimmed)

	for _, token := range knownManufacturers {
		if !strings.HasPrefix(upper, token) {
			continue
		}
		// Token must end on a word boundary: "HPE ProLiant" is not an HP.
		if tail := upper[len(token):]; tail != "" {
			if r := rune(tail[0]); unicode.IsLetter(r) || unicode.IsDigit(r) {
				continue
			}
		}
		rest := strings.TrimSpace(trimmed[len(token):])
		if appleAliases[token] {
			// "IPHONE 15 PRO" keeps the family in the model.
			return "APPLE", strings.TrimSpace(upper), true
		}
		if token == "APPLE" && startsWithAppleAlias(rest) {
			// "Apple iPhone 15 Pro" normalizes like a bare "IPHONE 15 PRO".
			return "APPLE", strings.ToUpper(rest), true
		}
		if rest == "" {
			return token, "", true
		}
		return token, rest, true
	}
	return "", trimmed, false
}

func startsWithAppleAlias(s string) bool {
	upper := strings.ToUpper(s)
	for family := range appleAliases {
		if !strings.HasPrefix(upper, family) {
			continue
		}
		if tail := upper[len(family):]; tail != "" {
			if r := rune(tail[0]); unicode.IsLetter(r) || unicode.IsDigit(r) {
				continue
			}
		}
		return true
	}
	return false
}

var storageTokenRe = regexp.MustCompile(`(?i)\b(\d+)\s*(GB|TB)\b`)

// StorageFromName extracts a capacity token such as "128GB" or "1 TB" from a
// device name, normalized to "<N> GB" / "<N> TB".
func StorageFromName(name string) (string, bool) {
	m := storageTokenRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s %s", m[1], strings.ToUpper(m[2])), true
}

// FormatCapacityGB renders a numeric capacity (possibly fractional, as
// management agents report GiB) rounded to the nearest whole GB.
func FormatCapacityGB(value float64) string {
	return fmt.Sprintf("%d GB", int64(math.Round(value)))
}

// NormalizeCapacity parses the numeric prefix of a reported capacity and
// renders it rounded to a whole unit. Bare numbers are taken as GB, so
// "15.8" becomes "16 GB" and "16 GB" stays "16 GB"; a TB suffix is kept.
func NormalizeCapacity(raw string) (string, bool) {
	n, ok := rules.LeadingNumber(raw)
	if !ok {
		return "", false
	}
	if strings.Contains(strings.ToUpper(raw), "TB") {
		return fmt.Sprintf("%d TB", int64(math.Round(n))), true
	}
	return FormatCapacityGB(n), true
}

// InferStatus applies the shared status inference: an assignment implies
// ASSIGNED, its absence AVAILABLE.
func InferStatus(assignedTo string) string {
	if strings.TrimSpace(assignedTo) != "" {
		return domain.StatusAssigned
	}
	return domain.StatusAvailable
}

var digitsRe = regexp.MustCompile(`\D`)

// Digits strips everything but digits, for phone numbers and IMEIs.
func Digits(s string) string {
	return digitsRe.ReplaceAllString(s, "")
}

// TagSlug renders a person or device name as a deterministic tag fragment:
// diacritics stripped, uppercased, non-alphanumerics dropped. "José Núñez"
// becomes "JOSENUNEZ" every time.
func TagSlug(name string) string {
	decomposed := norm.NFD.String(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func appendf(errs []string, format string, args ...any) []string {
	return append(errs, fmt.Sprintf(format, args...))
}
