package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/nalgeon/be"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"0.1.0-dev", "", "", "lev 0.1.0-dev"},
		{"1.2.3", "abc123", "", "lev 1.2.3 (abc123)"},
		{"1.2.3", "abc123", "2024-01-15", "lev 1.2.3 (abc123) built 2024-01-15"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			withVersion(t, tt.version, tt.commit, tt.date)
			be.Equal(t, Describe(false), tt.want)
		})
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	withVersion(t, "1.2.3-rc.1+build.5", "", "")
	be.Equal(t, Colored(), "1.2.3-rc.1+build.5")

	withVersion(t, "nightly", "", "")
	be.Equal(t, Colored(), "nightly")
}
