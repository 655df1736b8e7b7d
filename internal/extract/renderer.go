package extract

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

// PageImage is one rendered page, owned by a single request's lifetime.
type PageImage struct {
	Index int // 1-based page ordinal
	Path  string
}

// PageRenderer rasterizes a document into an ordered sequence of page images
// written under destDir.
type PageRenderer interface {
	Render(ctx context.Context, docPath, destDir string) ([]PageImage, error)
}

// FitzRenderer renders PDF pages with MuPDF at a fixed density, downscaling
// anything larger than the target canvas. 300 DPI with a 2000x2800 canvas is
// the sweet spot for OCR on typical scanned pages.
type FitzRenderer struct {
	dpi       float64
	maxWidth  int
	maxHeight int
}

func NewFitzRenderer(dpi float64, maxWidth, maxHeight int) *FitzRenderer {
	return &FitzRenderer{dpi: dpi, maxWidth: maxWidth, maxHeight: maxHeight}
}

func (r *FitzRenderer) Render(ctx context.Context, docPath, destDir string) ([]PageImage, error) {
	doc, err := fitz.New(docPath)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	count := doc.NumPage()
	if count == 0 {
		return nil, ErrNoPages
	}

	pages := make([]PageImage, 0, count)
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d: %w", i+1, err)
		}

		path := filepath.Join(destDir, fmt.Sprintf("page-%04d.png", i+1))
		if err := writePNG(path, r.fit(img)); err != nil {
			return nil, fmt.Errorf("write page %d: %w", i+1, err)
		}
		pages = append(pages, PageImage{Index: i + 1, Path: path})
	}
	return pages, nil
}

// fit downscales an image that exceeds the target canvas, preserving aspect.
func (r *FitzRenderer) fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= r.maxWidth && b.Dy() <= r.maxHeight {
		return img
	}
	scale := math.Min(float64(r.maxWidth)/float64(b.Dx()), float64(r.maxHeight)/float64(b.Dy()))
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
