// Package report loads the fixed JSON report document served alongside the file store.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultPath is where the report lives relative to the working directory
const DefaultPath = "test/report.json"

// Load reads the report at path and returns its top-level fields.
// The document must be a single JSON object.
func Load(ctx context.Context, path string) (map[string]any, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading report")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading report: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, errors.Errorf("parsing report: %w", err)
	}
	if fields == nil {
		return nil, errors.New("parsing report: document must be a JSON object")
	}

	return fields, nil
}
