package similarity

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	t.Parallel()

	if got := Ratio("Tottenham", "Tottenham"); got != 1 {
		t.Fatalf("identical names: got=%v want=1", got)
	}
	if got := Ratio("TOTTENHAM", "tottenham"); got != 1 {
		t.Fatalf("case must not matter: got=%v want=1", got)
	}
	if got := Ratio("", "Arsenal"); got != 0 {
		t.Fatalf("empty name: got=%v want=0", got)
	}

	// One substitution over nine characters.
	got := Ratio("Tottenham", "Tottenhan")
	want := 1 - 1.0/9.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("single typo: got=%v want=%v", got, want)
	}

	if Ratio("Arsenal", "Liverpool") > 0.5 {
		t.Fatalf("unrelated names scored too high: %v", Ratio("Arsenal", "Liverpool"))
	}
}

func TestComposite(t *testing.T) {
	t.Parallel()

	if got := Composite(0.9, 0); got != 0.9 {
		t.Fatalf("zero offset: got=%v want=0.9", got)
	}
	if got := Composite(0.9, 2); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("two day offset: got=%v want=0.8", got)
	}
	if got := Composite(0.9, -2); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("negative offset must cost the same: got=%v want=0.8", got)
	}
	if got := Composite(0.05, 3); got != 0 {
		t.Fatalf("penalty below zero must clamp: got=%v", got)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	if got := Clamp(-0.1); got != 0 {
		t.Fatalf("got=%v want=0", got)
	}
	if got := Clamp(1.1); got != 1 {
		t.Fatalf("got=%v want=1", got)
	}
	if got := Clamp(0.42); got != 0.42 {
		t.Fatalf("got=%v want=0.42", got)
	}
}
