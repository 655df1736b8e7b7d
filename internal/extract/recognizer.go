package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// PageRecognizer performs OCR on a single rendered page image.
type PageRecognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// charWhitelist restricts recognition to ASCII letters, digits and common
// punctuation, which cuts down on line-noise output from scan artifacts.
const charWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 .,;:!?'\"()[]{}/-+=%&@#$*"

// TesseractRecognizer wraps gosseract. A fresh client is created and closed
// for every invocation so engine state from one page can never leak into the
// next, at the cost of per-page init/teardown.
type TesseractRecognizer struct {
	language      string
	clientFactory func() *gosseract.Client
}

func NewTesseractRecognizer(language string) *TesseractRecognizer {
	if language == "" {
		language = "eng"
	}
	return &TesseractRecognizer{
		language:      language,
		clientFactory: gosseract.NewClient,
	}
}

func (t *TesseractRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c := t.clientFactory()
	defer c.Close()

	if err := c.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := c.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := c.SetWhitelist(charWhitelist); err != nil {
		return "", fmt.Errorf("set whitelist: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
