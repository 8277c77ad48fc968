package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"formatted mobile", "(41) 99999-8888", "41999998888"},
		{"formatted landline", "(41) 3333-2222", "4133332222"},
		{"spaces and dashes", "41 99999 8888", "41999998888"},
		{"country code kept", "+55 41 99999-8888", "5541999998888"},
		{"already digits", "41999998888", "41999998888"},
		{"letters stripped", "tel: 41999998888", "41999998888"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"(41) 99999-8888", "41 3333-2222", "+55 41 98888-7777"}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestIsPlausible(t *testing.T) {
	assert.True(t, IsPlausible("41999998888"))
	assert.True(t, IsPlausible("4133332222"))
	assert.False(t, IsPlausible(""))
	assert.False(t, IsPlausible("999"))
	assert.False(t, IsPlausible("554199999888812"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "(41) 99999-8888", Format("41999998888"))
	assert.Equal(t, "(41) 3333-2222", Format("4133332222"))
	// lengths Format does not understand come back untouched
	assert.Equal(t, "999", Format("999"))
}
