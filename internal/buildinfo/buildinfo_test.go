package buildinfo

import "testing"

func TestShort(t *testing.T) {
	origV, origC := Version, Commit
	t.Cleanup(func() { Version, Commit = origV, origC })

	Version, Commit = "v1.2.0", "0123456789abcdef"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short() = %q, want version", got)
	}
	Version = "dev"
	if got := Short(); got != "0123456789ab" {
		t.Fatalf("Short() = %q, want shortened commit", got)
	}
}
