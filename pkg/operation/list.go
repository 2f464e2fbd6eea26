package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/store"
)

// 📋 ListOperation collects the names of every stored document
type ListOperation struct {
	opts    Options
	pattern string
	names   []string
}

// 🏭 NewListOperation creates a listing, optionally narrowed by a glob pattern
func NewListOperation(opts Options, pattern string) *ListOperation {
	return &ListOperation{opts: opts, pattern: pattern}
}

func (op *ListOperation) Name() string {
	return "list"
}

// Names returns the listing after Execute; order is unspecified
func (op *ListOperation) Names() []string {
	return op.names
}

func (op *ListOperation) Execute(ctx context.Context) error {
	if err := op.opts.validate(); err != nil {
		return err
	}

	names, err := op.opts.Store.List(ctx)
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}

	names, err = store.Filter(names, op.pattern)
	if err != nil {
		return errors.Errorf("filtering files: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("count", len(names)).Str("pattern", op.pattern).Msg("listed files")
	op.names = names
	return nil
}
