package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Replace returns text with every non-overlapping occurrence of old replaced by new.
// Matches are found left to right and the scan resumes after each matched span,
// so a replacement is never rescanned. An empty old leaves text unchanged.
func Replace(text, old, new string) string {
	if old == "" {
		return text
	}
	return strings.ReplaceAll(text, old, new)
}

// Count returns the number of non-overlapping occurrences of old in text.
// It is zero for an empty old, matching Replace.
func Count(text, old string) int {
	if old == "" {
		return 0
	}
	return strings.Count(text, old)
}

// SimpleTextReplacer implements TextReplacer using literal string replacement
type SimpleTextReplacer struct{}

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		// empty rules are no-ops
		if rule.FromText == "" {
			continue
		}

		n := Count(currentContent, rule.FromText)
		if n == 0 {
			continue
		}

		result.ReplacementCount += n
		currentContent = Replace(currentContent, rule.FromText, rule.ToText)
	}

	result.WasModified = currentContent != string(originalContent)
	result.ModifiedContent = []byte(currentContent)
	return result, nil
}
