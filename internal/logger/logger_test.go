package logger

import "testing"

func TestNewLevels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "", " WARN "} {
		t.Run(lvl, func(t *testing.T) {
			l, err := New(lvl, false)
			if err != nil {
				t.Fatalf("New(%q) error = %v", lvl, err)
			}
			if l == nil {
				t.Fatalf("New(%q) returned nil", lvl)
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose", false); err == nil {
		t.Error("New(\"verbose\") should fail")
	}
}

func TestNamedLogger(t *testing.T) {
	l, err := New("error", true)
	if err != nil {
		t.Fatal(err)
	}
	child := l.Named("catalog")
	if child == nil {
		t.Fatal("Named() returned nil")
	}
	child.Debug("not emitted at error level", String("kind", "broker"))
}
