// Package format holds the small string normalizations shared by the portal
// forms: phone scrubbing, store name prefixing and alias handling.
package format

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// StoreNamePrefix is prepended to every store name shown to customers.
const StoreNamePrefix = "AutoCare24 - "

// AliasPrefix starts every generated store alias.
const AliasPrefix = "AC24"

const aliasCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var aliasPattern = regexp.MustCompile(`^AC24[A-Z0-9]{6}$`)

// PhoneDigits strips every non-digit rune and caps the result at 10 digits,
// matching the live scrubbing the forms apply.
func PhoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == 10 {
			break
		}
	}
	return b.String()
}

// PrefixStoreName prepends StoreNamePrefix unless the name already carries
// it. Applying it twice yields the same single prefix.
func PrefixStoreName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, strings.TrimSuffix(StoreNamePrefix, " ")) {
		return name
	}
	return StoreNamePrefix + name
}

// UnprefixStoreName removes the display prefix for edit forms.
func UnprefixStoreName(name string) string {
	return strings.TrimPrefix(name, StoreNamePrefix)
}

// NewAlias generates a store login alias of the form AC24 followed by six
// random base-36 characters.
func NewAlias() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = aliasCharset[rand.IntN(len(aliasCharset))]
	}
	return AliasPrefix + string(b)
}

// ValidAlias reports whether s matches the generated alias shape.
func ValidAlias(s string) bool {
	return aliasPattern.MatchString(s)
}

var loginAliasPrefix = regexp.MustCompile(`(?i)^autocare24[- ]?`)

// StripLoginAlias normalizes the identifier typed on the store and garage
// login pages: managers often paste the full display name, so a leading
// "Autocare24", "Autocare24-" or "Autocare24 " is dropped before the alias
// is sent to the API.
func StripLoginAlias(s string) string {
	return strings.TrimSpace(loginAliasPrefix.ReplaceAllString(strings.TrimSpace(s), ""))
}
