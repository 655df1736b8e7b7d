package textextract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTXT(t *testing.T) {
	data := []byte("  plain text notes\nwith two lines  ")
	result, err := Extract(bytes.NewReader(data), int64(len(data)), ".txt")
	require.NoError(t, err)

	assert.Equal(t, "plain text notes\nwith two lines", result.Content)
	assert.Equal(t, 1, result.Pages)
}

func TestExtractDOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<w:document><w:body><w:p><w:t>Hello</w:t><w:t>docx world</w:t></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	data := buf.Bytes()
	result, err := Extract(bytes.NewReader(data), int64(len(data)), ".docx")
	require.NoError(t, err)

	assert.Contains(t, result.Content, "Hello")
	assert.Contains(t, result.Content, "docx world")
}

func TestExtractCorruptPDF(t *testing.T) {
	data := []byte("definitely not a pdf")
	_, err := Extract(bytes.NewReader(data), int64(len(data)), ".pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open PDF")
}

func TestExtractUnsupportedType(t *testing.T) {
	data := []byte("x")
	_, err := Extract(bytes.NewReader(data), int64(len(data)), ".png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtractTypeAliases(t *testing.T) {
	data := []byte("some plain text")
	for _, ft := range []string{".txt", "txt", "text/plain"} {
		result, err := Extract(bytes.NewReader(data), int64(len(data)), ft)
		require.NoError(t, err, ft)
		assert.Equal(t, "some plain text", result.Content)
	}
}

func TestSupportedTypes(t *testing.T) {
	assert.ElementsMatch(t, []string{".pdf", ".docx", ".txt"}, SupportedTypes())
}
