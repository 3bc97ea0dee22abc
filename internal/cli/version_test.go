package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestPrintVersion(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer SetVersionInfo(origVersion, origCommit, origDate)

	SetVersionInfo("1.2.3", "abc1234", "2025-01-08T12:00:00Z")

	tests := []struct {
		name     string
		short    bool
		contains []string
		exact    string
	}{
		{
			name: "full",
			contains: []string{
				"vitals v1.2.3",
				"commit: abc1234",
				"built: 2025-01-08T12:00:00Z",
				"go: " + runtime.Version(),
				"os/arch: " + runtime.GOOS + "/" + runtime.GOARCH,
			},
		},
		{
			name:  "short",
			short: true,
			exact: "1.2.3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&buf)

			printVersion(cmd, tt.short)

			if tt.exact != "" {
				assert.Equal(t, tt.exact, buf.String())
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1.0.0", "v1.0.0"},
		{"v1.0.0", "v1.0.0"},
		{"dev", "dev"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVersion(tt.in))
	}
}
