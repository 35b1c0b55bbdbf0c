package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Phone requires exactly ten digits; the forms scrub non-digits before this
// runs, so anything shorter means the user typed an incomplete number.
func Phone(field, value string, v Violations) {
	if len(value) != 10 {
		v[field] = "must_be_10_digits"
		return
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			v[field] = "must_be_10_digits"
			return
		}
	}
}

// Email is a light shape check; real validation belongs to the API.
func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 || !strings.Contains(value[at:], ".") {
		v[field] = "invalid_email"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}
