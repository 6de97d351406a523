package identity

import "testing"

func TestIdentify_Deterministic(t *testing.T) {
	url := "https://example.com/post?a=1"

	first := Identify(url)
	second := Identify(url)

	if first != second {
		t.Errorf("Expected identical ids for identical URLs, got %s and %s", first, second)
	}
}

func TestIdentify_DistinctURLs(t *testing.T) {
	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/a/",
		"http://example.com/a",
		"https://example.com/a?x=1",
	}

	seen := make(map[string]string)
	for _, url := range urls {
		id := Identify(url)
		if prev, ok := seen[id]; ok {
			t.Errorf("Collision: %s and %s both map to %s", prev, url, id)
		}
		seen[id] = url
	}
}

func TestIdentify_HexSHA256(t *testing.T) {
	id := Identify("https://example.com")

	if len(id) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(id))
	}
	for _, c := range id {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("Expected lowercase hex, found %q in %s", c, id)
		}
	}
}
