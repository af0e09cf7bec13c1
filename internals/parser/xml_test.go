package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseXMLRepeatedElements(t *testing.T) {
	data := []byte(`<items><item id="1"><name>Alpha</name></item><item id="2"><name>Beta</name></item></items>`)

	documents, err := Parse(data, "xml", nil)
	require.NoError(t, err)
	require.Len(t, documents, 2)

	assert.Equal(t, "1", documents[0].Source["-id"])
	assert.Equal(t, "Alpha", documents[0].Source["name"])
	assert.Equal(t, "2", documents[1].Source["-id"])
	assert.Equal(t, "Beta", documents[1].Source["name"])
}

func TestParseXMLSingleElement(t *testing.T) {
	data := []byte(`<root><entry><name>Solo</name></entry></root>`)

	documents, err := Parse(data, "xml", nil)
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, "Solo", documents[0].Source["name"])
}

func TestParseXMLMalformed(t *testing.T) {
	documents, err := Parse([]byte(`<items><item></items>`), "xml", nil)
	require.Error(t, err)
	assert.Nil(t, documents)
}
