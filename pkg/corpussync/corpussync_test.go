package corpussync

import "testing"

func TestRevisionFromSourceRequiresOneSelector(t *testing.T) {
	if _, err := revisionFromSource(Source{URL: "https://example.com/corpus.git"}); err == nil {
		t.Fatal("want an error when no rev, tag, or branch is given")
	}
}

func TestRevisionFromSourcePrefersRevOverTagAndBranch(t *testing.T) {
	rev, err := revisionFromSource(Source{Rev: "abc123", Tag: "v1", Branch: "main"})
	if err != nil {
		t.Fatalf("revisionFromSource: %v", err)
	}
	if string(rev) != "abc123" {
		t.Fatalf("want abc123, got %s", rev)
	}
}

func TestSanitizeNameStripsSchemeAndSuffix(t *testing.T) {
	got := sanitizeName("https://example.com/org/corpus.git")
	if got == "" {
		t.Fatal("want a non-empty sanitized name")
	}
	if got != "example-com-org-corpus" {
		t.Fatalf("want scheme and .git suffix stripped to example-com-org-corpus, got %q", got)
	}
	for _, r := range got {
		if r == '/' || r == ':' {
			t.Fatalf("want no path separators in sanitized name, got %q", got)
		}
	}
}
