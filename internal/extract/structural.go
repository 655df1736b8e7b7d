package extract

import (
	"io"

	"github.com/studylens/extraction-api/pkg/textextract"
)

// StructuralExtractor reads text embedded in a document's internal
// representation, without rendering or recognition.
type StructuralExtractor interface {
	Extract(data io.ReaderAt, size int64, fileType string) (string, error)
}

// TextLayer is the default structural extractor backed by pkg/textextract.
type TextLayer struct{}

func (TextLayer) Extract(data io.ReaderAt, size int64, fileType string) (string, error) {
	result, err := textextract.Extract(data, size, fileType)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}
