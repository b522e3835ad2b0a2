package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Word count slider bounds.
const (
	MinWordCount  = 100
	MaxWordCount  = 4000
	WordCountStep = 50
)

// Parameter choices offered by the form.
var (
	WritingStyles = []string{"academic", "conversational", "persuasive", "reflective", "creative"}
	Tones         = []string{"friendly", "formal", "motivational", "humorous", "neutral"}
	Uniqueness    = []string{"standard", "medium", "high"}
)

// Parameter defaults.
const (
	DefaultWritingStyle = "academic"
	DefaultTone         = "neutral"
	DefaultUniqueness   = "standard"
)

// ValidateWordCount checks n against the slider bounds.
func ValidateWordCount(n int) error {
	if n < MinWordCount || n > MaxWordCount {
		return fmt.Errorf("word count must be between %d and %d, got %d", MinWordCount, MaxWordCount, n)
	}
	return nil
}

// NormalizeChoice lowercases v and checks it against the allowed options.
func NormalizeChoice(name, v string, options []string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if !slices.Contains(options, v) {
		return "", fmt.Errorf("invalid %s %q (supported: %s)", name, v, strings.Join(options, ", "))
	}
	return v, nil
}
