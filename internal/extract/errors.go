package extract

import "errors"

var (
	// ErrInsufficientContent means both extraction tiers ran but neither
	// produced enough text to clear the acceptance threshold. Distinct from a
	// renderer or I/O fault so callers can report it with its own detail.
	ErrInsufficientContent = errors.New("extracted text is below the minimum acceptance threshold")

	// ErrNoPages means the document rendered to zero pages.
	ErrNoPages = errors.New("document contains no pages")
)
