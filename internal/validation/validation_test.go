package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	Required("city", "Pune", v)
	assert.Equal(t, "required", v["name"])
	assert.NotContains(t, v, "city")
	assert.False(t, v.Empty())
}

func TestPhone(t *testing.T) {
	v := make(Violations)
	Phone("phone", "9876543210", v)
	assert.True(t, v.Empty())

	Phone("short", "98765", v)
	Phone("alpha", "98765x3210", v)
	assert.Equal(t, "must_be_10_digits", v["short"])
	assert.Equal(t, "must_be_10_digits", v["alpha"])
}

func TestEmail(t *testing.T) {
	v := make(Violations)
	Email("ok", "a@b.in", v)
	Email("empty", "", v)
	Email("bad", "not-an-email", v)
	Email("trailing", "a@", v)
	assert.NotContains(t, v, "ok")
	assert.NotContains(t, v, "empty")
	assert.Equal(t, "invalid_email", v["bad"])
	assert.Equal(t, "invalid_email", v["trailing"])
}

func TestNonNegativeInt(t *testing.T) {
	v := make(Violations)
	NonNegativeInt("count", 0, v)
	NonNegativeInt("cap", -1, v)
	assert.NotContains(t, v, "count")
	assert.Equal(t, "must_not_be_negative", v["cap"])
}
