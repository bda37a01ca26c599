package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	t.Cleanup(func() { Commit, Date = oldCommit, oldDate })

	Commit, Date = "unknown", "unknown"
	if got := String(); !strings.HasPrefix(got, "studio version dev (") {
		t.Errorf("String() = %q", got)
	}

	Commit, Date = "0123456789abcdef", "2026-01-02T03:04:05Z"
	if got := String(); !strings.Contains(got, "commit: 01234567,") {
		t.Errorf("String() = %q, want truncated commit", got)
	}

	Commit = "abc"
	if got := String(); !strings.Contains(got, "commit: abc,") {
		t.Errorf("String() = %q, want short commit untouched", got)
	}
}

func TestShort(t *testing.T) {
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
