package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📝 WriteOperation stores content under name as given
type WriteOperation struct {
	opts    Options
	name    string
	content string
	outcome Outcome
}

// 🏭 NewWriteOperation creates a whole-document write
func NewWriteOperation(opts Options, name, content string) *WriteOperation {
	return &WriteOperation{opts: opts, name: name, content: content}
}

func (op *WriteOperation) Name() string {
	return "write"
}

// Outcome returns what Execute did
func (op *WriteOperation) Outcome() Outcome {
	return op.outcome
}

func (op *WriteOperation) Execute(ctx context.Context) error {
	if err := op.opts.validate(); err != nil {
		return err
	}

	existed, err := op.opts.Store.Exists(ctx, op.name)
	if err != nil {
		return errors.Errorf("checking %s: %w", op.name, err)
	}
	created := !existed

	if err := op.opts.Store.Write(ctx, op.name, op.content); err != nil {
		return errors.Errorf("writing %s: %w", op.name, err)
	}

	op.outcome = Outcome{
		Destination: op.name,
		Modified:    true,
		Created:     created,
	}

	zerolog.Ctx(ctx).Debug().Str("name", op.name).Bool("created", created).Msg("wrote file")
	return nil
}
