package version

import (
	"strings"
	"testing"
)

func TestDefaultsAreInitialized(t *testing.T) {
	for name, v := range map[string]string{"Version": Version, "BuildTime": BuildTime, "GitCommit": GitCommit} {
		if v == "" {
			t.Errorf("%s should not be empty", name)
		}
	}
}

func TestString(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, "mdhtml "+Version) {
		t.Errorf("String() = %q, want prefix %q", got, "mdhtml "+Version)
	}
	if !strings.Contains(got, GitCommit) {
		t.Errorf("String() = %q, missing commit", got)
	}
}
