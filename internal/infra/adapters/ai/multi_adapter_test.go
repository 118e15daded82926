package ai

import (
	"context"
	"errors"
	"testing"

	"twinpersona/internal/domain/ports/adapter"
)

type stubText struct {
	name  string
	reply string
	err   error
	calls int
}

func (s *stubText) Name() string { return s.name }

func (s *stubText) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestMultiTextGenerator_FirstProviderWins(t *testing.T) {
	t.Parallel()

	primary := &stubText{name: "a", reply: "from-a"}
	secondary := &stubText{name: "b", reply: "from-b"}
	m := NewMultiTextGenerator(primary, secondary)

	out, err := m.Generate(context.Background(), []adapter.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "from-a" {
		t.Fatalf("expected from-a, got %q", out)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary should not be called when primary succeeds")
	}
}

func TestMultiTextGenerator_FailsOver(t *testing.T) {
	t.Parallel()

	primary := &stubText{name: "a", err: errors.New("boom")}
	secondary := &stubText{name: "b", reply: "from-b"}
	m := NewMultiTextGenerator(primary, secondary)

	out, err := m.Generate(context.Background(), []adapter.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "from-b" {
		t.Fatalf("expected from-b, got %q", out)
	}
}

func TestMultiTextGenerator_AllFail(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("last error")
	m := NewMultiTextGenerator(
		&stubText{name: "a", err: errors.New("first error")},
		&stubText{name: "b", err: wantErr},
	)

	if _, err := m.Generate(context.Background(), nil); !errors.Is(err, wantErr) {
		t.Fatalf("expected last provider error, got %v", err)
	}
}

func TestMultiTextGenerator_SkipsNilProviders(t *testing.T) {
	t.Parallel()

	m := NewMultiTextGenerator(nil, &stubText{name: "b", reply: "ok"})
	out, err := m.Generate(context.Background(), nil)
	if err != nil || out != "ok" {
		t.Fatalf("expected ok, got %q err=%v", out, err)
	}
}

func TestMultiTextGenerator_Empty(t *testing.T) {
	t.Parallel()

	m := NewMultiTextGenerator()
	if _, err := m.Generate(context.Background(), nil); err == nil {
		t.Fatalf("expected error with no providers")
	}
}
