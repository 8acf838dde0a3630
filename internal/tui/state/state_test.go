package state

import "testing"

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
}

func TestCycleFocus(t *testing.T) {
	cases := []struct {
		current, size, delta, want int
	}{
		{-1, 3, 1, 0},
		{-1, 3, -1, 2},
		{0, 3, 1, 1},
		{2, 3, 1, 0},
		{0, 3, -1, 2},
		{1, 0, 1, -1},
	}
	for _, tc := range cases {
		if got := CycleFocus(tc.current, tc.size, tc.delta); got != tc.want {
			t.Fatalf("CycleFocus(%d, %d, %d) = %d, want %d", tc.current, tc.size, tc.delta, got, tc.want)
		}
	}
}

func TestScrollToLine(t *testing.T) {
	if got := ScrollToLine(10, 4, 5); got != 4 {
		t.Fatalf("expected scroll up to 4, got %d", got)
	}
	if got := ScrollToLine(0, 7, 5); got != 3 {
		t.Fatalf("expected scroll down to 3, got %d", got)
	}
	if got := ScrollToLine(2, 4, 5); got != 2 {
		t.Fatalf("expected offset to stay, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(5, 3, 3)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(2, 1, 10)
	if start != 0 || end != 2 {
		t.Fatalf("unexpected short window: start=%d end=%d", start, end)
	}
}

func TestNextTip(t *testing.T) {
	if got := NextTip(5, 6); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	if got := NextTip(0, 0); got != 0 {
		t.Fatalf("expected 0 without tips, got %d", got)
	}
}
