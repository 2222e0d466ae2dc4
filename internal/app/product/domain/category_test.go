package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"FOOD", CategoryFood},
		{"fashion", CategoryFashion},
		{"  Electronic ", CategoryElectronic},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("TOYS")

	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), `"TOYS"`)
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid(), c.String())
		assert.False(t, c.IsZero())
	}

	assert.False(t, Category("").Valid())
	assert.True(t, Category("").IsZero())
	assert.False(t, Category("food").Valid(), "stored names are upper case")
}
