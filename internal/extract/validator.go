package extract

import "strings"

// Validator applies the final minimum-content acceptance policy. It is a
// stricter safety net than the per-tier sufficiency checks: output that is
// technically non-empty but useless is rejected no matter which tier
// produced it.
type Validator struct {
	minChars int
}

func NewValidator(minChars int) *Validator {
	return &Validator{minChars: minChars}
}

// Validate accepts candidate text only if its trimmed length strictly
// exceeds the threshold.
func (v *Validator) Validate(text string) error {
	if len(strings.TrimSpace(text)) > v.minChars {
		return nil
	}
	return ErrInsufficientContent
}
