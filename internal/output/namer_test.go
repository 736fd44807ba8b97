package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My  Cool Project!!", "My-Cool-Project.txt"},
		{"***", "project.txt"},
		{"", "collected_code.txt"},
		{"   ", "collected_code.txt"},
		{"  padded  ", "padded.txt"},
		{"api_v1.2-final", "api_v1.2-final.txt"},
		{"tab\tand\nnewline", "tab-and-newline.txt"},
		{"çódigo fonte", "digo-fonte.txt"},
		{"a/b\\c", "abc.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NameFor(tt.input))
		})
	}
}

func TestNameFor_Deterministic(t *testing.T) {
	assert.Equal(t, NameFor("Same Name"), NameFor("Same Name"))
}
