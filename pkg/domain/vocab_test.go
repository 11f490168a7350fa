package domain

import (
	"regexp"
	"testing"
)

func TestWellPositionsGrid(t *testing.T) {
	positions := WellPositions()
	if len(positions) != 96 {
		t.Fatalf("expected 96 positions, got %d", len(positions))
	}
	if positions[0] != "A01" || positions[95] != "H12" {
		t.Fatalf("grid bounds: got %q..%q", positions[0], positions[95])
	}

	pattern := regexp.MustCompile(`^[A-H](0[1-9]|1[0-2])$`)
	seen := make(map[string]struct{}, len(positions))
	for _, pos := range positions {
		if !pattern.MatchString(pos) {
			t.Fatalf("position %q outside grid pattern", pos)
		}
		if _, dup := seen[pos]; dup {
			t.Fatalf("duplicate position %q", pos)
		}
		seen[pos] = struct{}{}
		if !IsWellPosition(pos) {
			t.Fatalf("IsWellPosition rejected generated position %q", pos)
		}
	}
}

func TestIsWellPositionRejectsOutOfGrid(t *testing.T) {
	for _, name := range []string{"", "A1", "A001", "A00", "A13", "H13", "I01", "a01", "999", "B0x"} {
		if IsWellPosition(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestWellIndexHelpers(t *testing.T) {
	cases := []struct {
		name string
		row  int
		col  int
	}{
		{"A01", 0, 0},
		{"B07", 1, 6},
		{"H12", 7, 11},
	}
	for _, c := range cases {
		if got := WellRowIndex(c.name); got != c.row {
			t.Fatalf("row index of %q: got %d, want %d", c.name, got, c.row)
		}
		if got := WellColumnIndex(c.name); got != c.col {
			t.Fatalf("column index of %q: got %d, want %d", c.name, got, c.col)
		}
	}
}

func TestPrimerNames(t *testing.T) {
	names := PrimerNames()
	if len(names) != 3 {
		t.Fatalf("expected 3 primer names, got %d", len(names))
	}
	for _, name := range []string{"01", "04", "DL"} {
		if !IsPrimerName(name) {
			t.Fatalf("expected %q to be a valid primer", name)
		}
	}
	for _, name := range []string{"", "99", "dl", "02"} {
		if IsPrimerName(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}
