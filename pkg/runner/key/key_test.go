package key

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestKeyListsEveryGlyph(t *testing.T) {
	var out bytes.Buffer
	if err := (&Key{Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("key: %v", err)
	}
	for _, want := range []string{"●", "★", "◆", "⚑", "⚠", "✓", "deadline"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in legend:\n%s", want, out.String())
		}
	}
}
