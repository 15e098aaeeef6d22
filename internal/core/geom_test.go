package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 5, 4, 2)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{10, 5, true},
		{13, 6, true},
		{14, 5, false}, // right edge is exclusive
		{10, 7, false}, // bottom edge is exclusive
		{9, 5, false},
		{12, 4, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRectWithinAndInset(t *testing.T) {
	outer := NewRect(0, 0, 20, 10)
	inner := outer.Inset(1)

	if inner != NewRect(1, 1, 18, 8) {
		t.Errorf("Inset(1) = %+v", inner)
	}
	if !NewRect(1, 1, 4, 2).Within(inner) {
		t.Error("balloon at the inset corner should be within")
	}
	if NewRect(16, 1, 4, 2).Within(inner) {
		t.Error("balloon crossing the right edge should not be within")
	}
	if !NewRect(3, 3, 0, 5).Empty() {
		t.Error("zero-width rect should be empty")
	}
}
