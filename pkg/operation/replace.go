package operation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/text"
)

// 🔄 ReplaceOperation reads source, applies a rule, and writes the result to destination
type ReplaceOperation struct {
	opts        Options
	source      string
	destination string
	rule        text.ReplacementRule
	outcome     Outcome
}

// 🏭 NewReplaceOperation creates a replace from source into destination
func NewReplaceOperation(opts Options, source, destination string, rule text.ReplacementRule) *ReplaceOperation {
	return &ReplaceOperation{
		opts:        opts,
		source:      source,
		destination: destination,
		rule:        rule,
	}
}

func (op *ReplaceOperation) Name() string {
	return "replace"
}

// Outcome returns what Execute did
func (op *ReplaceOperation) Outcome() Outcome {
	return op.outcome
}

func (op *ReplaceOperation) Execute(ctx context.Context) error {
	if err := op.opts.validate(); err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx).With().
		Str("source", op.source).
		Str("destination", op.destination).
		Logger()

	content, err := op.opts.Store.Read(ctx, op.source)
	if err != nil {
		return errors.Errorf("reading %s: %w", op.source, err)
	}

	result, err := op.opts.replacer().ReplaceText(ctx, strings.NewReader(content), []text.ReplacementRule{op.rule})
	if err != nil {
		return errors.Errorf("replacing text: %w", err)
	}

	existed, err := op.opts.Store.Exists(ctx, op.destination)
	if err != nil {
		return errors.Errorf("checking %s: %w", op.destination, err)
	}
	created := !existed

	if err := op.opts.Store.Write(ctx, op.destination, string(result.ModifiedContent)); err != nil {
		return errors.Errorf("writing %s: %w", op.destination, err)
	}

	op.outcome = Outcome{
		Source:       op.source,
		Destination:  op.destination,
		Replacements: result.ReplacementCount,
		Modified:     result.WasModified,
		Created:      created,
	}

	logger.Debug().
		Int("replacements", result.ReplacementCount).
		Bool("created", created).
		Msg("replaced text")
	return nil
}
