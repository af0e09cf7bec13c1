package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "csv", DetectFormat("data/reports/daily.csv"))
	assert.Equal(t, "json", DetectFormat("data/test.JSON"))
	assert.Equal(t, "xlsx", DetectFormat("exports/Q3.XLSX"))
	assert.Equal(t, "", DetectFormat("no-extension"))
	assert.Equal(t, "gz", DetectFormat("archive.tar.gz"))
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("anything"), "dat", nil)
	require.Error(t, err)

	_, err = Parse([]byte("anything"), "", nil)
	require.Error(t, err)
}

func TestParseEmptyInput(t *testing.T) {
	// Zero bytes yield an empty document sequence for every supported format.
	for _, formatTag := range []string{"csv", "tsv", "json", "xml", "txt", "xlsx", "pdf"} {
		documents, err := Parse([]byte{}, formatTag, nil)
		require.NoError(t, err, formatTag)
		assert.Empty(t, documents, formatTag)
	}
}

func TestParseInvalidPolicy(t *testing.T) {
	_, err := Parse([]byte("a,b\n1,2\n"), "csv", map[string]interface{}{"has_header": "maybe"})
	require.Error(t, err)
}

func TestRegisterIsAdditive(t *testing.T) {
	require.False(t, Supported("custom"))
	Register("custom", parseText)
	defer delete(converters, "custom")
	require.True(t, Supported("custom"))

	documents, err := Parse([]byte("hello"), "CUSTOM", nil)
	require.NoError(t, err)
	require.Len(t, documents, 1)
}
