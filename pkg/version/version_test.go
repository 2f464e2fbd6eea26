package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name         string
		bi           *debug.BuildInfo
		ok           bool
		wantVersion  string
		wantRevision string
		wantModified bool
	}{
		{
			name:        "no_build_info",
			wantVersion: "dev",
		},
		{
			name:        "devel_build",
			bi:          &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ok:          true,
			wantVersion: "dev",
		},
		{
			name: "tagged_build",
			bi: &debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.3"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			ok:           true,
			wantVersion:  "v1.2.3",
			wantRevision: "abc123",
			wantModified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := fromBuildInfo(tt.bi, tt.ok)
			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantRevision, info.Revision)
			assert.Equal(t, tt.wantModified, info.Modified)
			assert.NotEmpty(t, info.GoVersion)
		})
	}
}

func TestFormat(t *testing.T) {
	out := Info{Version: "v1.0.0", Revision: "abc", Modified: true}.Format("replacer")
	assert.Contains(t, out, "🚀 replacer v1.0.0")
	assert.Contains(t, out, "abc (modified)")

	out = Info{Version: "dev"}.Format("replacerd")
	assert.Contains(t, out, "Revision:  unknown")
}
