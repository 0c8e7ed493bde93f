package logging

import "testing"

func TestNew(t *testing.T) {
	for _, debug := range []bool{true, false} {
		l, err := New(debug)
		if err != nil {
			t.Fatalf("New(%v): %v", debug, err)
		}
		if got := l.Core().Enabled(-1); got != debug {
			t.Fatalf("New(%v): debug level enabled = %v", debug, got)
		}
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("expected a logger")
	}
}
