package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Method records which extraction tier produced the final text. It is set at
// the point of decision, never inferred from the output content.
type Method string

const (
	MethodStructural  Method = "structural"
	MethodRecognition Method = "recognition"
)

// Request describes one document to extract. The orchestrator owns
// DocumentPath for the duration of the call and removes it before returning.
type Request struct {
	DocumentPath     string
	OriginalFilename string
	ModuleID         string
}

// Outcome is the successful extraction result. Exactly one tier contributes
// to Text; structural and recognized text are never merged.
type Outcome struct {
	Text           string
	Method         Method
	CharacterCount int
}

// Default thresholds. All comparisons are strict greater-than on trimmed
// length.
const (
	DefaultStructuralMinChars = 100
	DefaultPageMinChars       = 10
	DefaultFinalMinChars      = 50
	DefaultPageTimeout        = 90 * time.Second
)

type Options struct {
	// StructuralMinChars is the sufficiency threshold separating "has a real
	// text layer" from garbage or empty extraction.
	StructuralMinChars int
	// PageMinChars filters recognition noise and near-empty pages out of the
	// aggregate.
	PageMinChars int
	// FinalMinChars is the acceptance threshold applied to the final text.
	FinalMinChars int
	// Workers bounds concurrent page recognition. 1 keeps the sequential
	// reference behavior. Aggregation order is always page order regardless
	// of completion order.
	Workers int
	// PageTimeout bounds a single page's recognition; a timed-out page is
	// recorded as failed and its siblings proceed.
	PageTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.StructuralMinChars == 0 {
		o.StructuralMinChars = DefaultStructuralMinChars
	}
	if o.PageMinChars == 0 {
		o.PageMinChars = DefaultPageMinChars
	}
	if o.FinalMinChars == 0 {
		o.FinalMinChars = DefaultFinalMinChars
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.PageTimeout <= 0 {
		o.PageTimeout = DefaultPageTimeout
	}
	return o
}

// Orchestrator runs the tiered extraction strategy: structural text layer
// first, per-page OCR as the fallback. It guarantees that every temporary
// artifact created during a request is deleted before it returns, on every
// path.
type Orchestrator struct {
	store      *Store
	structural StructuralExtractor
	renderer   PageRenderer
	recognizer PageRecognizer
	validator  *Validator
	opts       Options
}

func NewOrchestrator(store *Store, structural StructuralExtractor, renderer PageRenderer, recognizer PageRecognizer, opts Options) *Orchestrator {
	opts = opts.withDefaults()
	return &Orchestrator{
		store:      store,
		structural: structural,
		renderer:   renderer,
		recognizer: recognizer,
		validator:  NewValidator(opts.FinalMinChars),
		opts:       opts,
	}
}

// Extract runs the tiered strategy against one document.
func (o *Orchestrator) Extract(ctx context.Context, req Request) (*Outcome, error) {
	defer o.store.Remove(req.DocumentPath)

	data, err := os.ReadFile(req.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	method := MethodStructural
	text, err := o.structural.Extract(bytes.NewReader(data), int64(len(data)), o.fileType(req))
	if err != nil {
		slog.Warn("structural extraction failed, falling back to recognition",
			"filename", req.OriginalFilename, "error", err)
		text = ""
	}

	if len(strings.TrimSpace(text)) <= o.opts.StructuralMinChars {
		method = MethodRecognition
		text, err = o.recognizeDocument(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	text = strings.TrimSpace(text)
	if err := o.validator.Validate(text); err != nil {
		return nil, err
	}

	slog.Info("document extracted",
		"filename", req.OriginalFilename,
		"module_id", req.ModuleID,
		"method", method,
		"chars", len(text))

	return &Outcome{Text: text, Method: method, CharacterCount: len(text)}, nil
}

// recognizeDocument renders every page and recognizes them with failure
// isolation: one bad page is logged and skipped, never aborting its siblings.
// All page images are removed before returning.
func (o *Orchestrator) recognizeDocument(ctx context.Context, req Request) (string, error) {
	pageDir, err := o.store.PageDir()
	if err != nil {
		return "", err
	}
	defer o.store.Remove(pageDir)

	pages, err := o.renderer.Render(ctx, req.DocumentPath, pageDir)
	if err != nil {
		return "", fmt.Errorf("render pages: %w", err)
	}

	// One result slot per page, indexed by position, so aggregation order is
	// independent of completion order when workers > 1.
	texts := make([]string, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Workers)
	for i, page := range pages {
		g.Go(func() error {
			pageText, err := o.recognizePage(gctx, page)
			if err != nil {
				slog.Warn("page recognition failed",
					"filename", req.OriginalFilename, "page", page.Index, "error", err)
				return nil
			}
			if len(strings.TrimSpace(pageText)) > o.opts.PageMinChars {
				texts[i] = strings.TrimSpace(pageText)
			}
			return nil
		})
	}
	// Tasks absorb their own failures, so Wait only reflects ctx errors
	// surfaced through recognizePage, which are already recorded per page.
	_ = g.Wait()

	var b strings.Builder
	for i, page := range pages {
		if texts[i] == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Page %d ---\n%s", page.Index, texts[i])
	}
	return b.String(), nil
}

// recognizePage runs one page's OCR under a bounded timeout. The engine call
// itself cannot be interrupted, so on timeout the result is abandoned and the
// page counts as failed.
func (o *Orchestrator) recognizePage(ctx context.Context, page PageImage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.opts.PageTimeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := o.recognizer.Recognize(ctx, page.Path)
		ch <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

func (o *Orchestrator) fileType(req Request) string {
	if ext := filepath.Ext(req.OriginalFilename); ext != "" {
		return ext
	}
	if ext := filepath.Ext(req.DocumentPath); ext != "" {
		return ext
	}
	return ".pdf"
}
