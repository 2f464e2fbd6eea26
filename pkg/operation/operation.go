package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/store"
	"github.com/walteh/replacer/pkg/text"
)

// 🎯 Operation is a single request against the store
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation once
	Execute(ctx context.Context) error
}

// 🔧 Options contains the collaborators every operation needs
type Options struct {
	// Store is where documents are read and written
	Store store.Store
	// Replacer transforms document text; defaults to text.SimpleTextReplacer
	Replacer text.TextReplacer
}

func (o Options) validate() error {
	if o.Store == nil {
		return errors.Errorf("store is required")
	}
	return nil
}

func (o Options) replacer() text.TextReplacer {
	if o.Replacer == nil {
		return text.NewSimpleTextReplacer()
	}
	return o.Replacer
}

// 📊 Outcome reports what a write-producing operation did
type Outcome struct {
	Source       string // document the text came from, empty for direct writes
	Destination  string // document that was written
	Replacements int    // occurrences replaced
	Modified     bool   // written text differs from the source text
	Created      bool   // destination did not exist before
}
