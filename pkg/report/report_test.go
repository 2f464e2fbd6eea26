package report

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		content     *string
		want        map[string]any
		errContains string
	}{
		{
			name:    "object",
			content: ptr(`{"passed": 12, "failed": 0, "suites": ["cli", "server"]}`),
			want: map[string]any{
				"passed": json.Number("12"),
				"failed": json.Number("0"),
				"suites": []any{"cli", "server"},
			},
		},
		{
			name:    "empty_object",
			content: ptr(`{}`),
			want:    map[string]any{},
		},
		{
			name:        "array",
			content:     ptr(`[1, 2]`),
			errContains: "parsing report",
		},
		{
			name:        "null",
			content:     ptr(`null`),
			errContains: "must be a JSON object",
		},
		{
			name:        "malformed",
			content:     ptr(`{"passed":`),
			errContains: "parsing report",
		},
		{
			name:        "missing",
			errContains: "reading report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "report.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			got, err := Load(context.Background(), path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				if tt.content == nil {
					assert.ErrorIs(t, err, fs.ErrNotExist)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr(s string) *string {
	return &s
}
