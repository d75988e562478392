package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "only whitespace", raw: "   ", expected: nil},
		{name: "single broker", raw: "k1:9092", expected: []string{"k1:9092"}},
		{name: "trims and drops blanks", raw: " k1:9092 ,, k2:9092 ,", expected: []string{"k1:9092", "k2:9092"}},
		{name: "dedupes preserving order", raw: "k2:9092,k1:9092,k2:9092", expected: []string{"k2:9092", "k1:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.raw))
		})
	}
}

func TestDedupeAndTrim(t *testing.T) {
	assert.Nil(t, DedupeAndTrim(nil))
	assert.Equal(t, []string{}, DedupeAndTrim([]string{"", "  "}))
	assert.Equal(t, []string{"foo", "bar"}, DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "bar"}))
}
