package domain

import "testing"

func TestCell_KeyRoundTrip(t *testing.T) {
	tests := []Cell{
		{I: 0, J: 0},
		{I: 5, J: 5},
		{I: -369995, J: 1220533},
		{I: -1, J: -1},
	}

	for _, c := range tests {
		t.Run(c.Key(), func(t *testing.T) {
			got, err := ParseCellKey(c.Key())
			if err != nil {
				t.Fatalf("ParseCellKey(%q) error: %v", c.Key(), err)
			}
			if got != c {
				t.Errorf("ParseCellKey(%q) = %v, want %v", c.Key(), got, c)
			}
		})
	}
}

func TestParseCellKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "5", "a,1", "1,b", "1;2"} {
		if _, err := ParseCellKey(key); err == nil {
			t.Errorf("ParseCellKey(%q) expected error", key)
		}
	}
}

func TestBounds_HalfOpen(t *testing.T) {
	b := Bounds{LatMin: 0, LngMin: 0, LatMax: 1, LngMax: 1}

	if !b.Contains(0, 0) {
		t.Error("min corner must be inside")
	}
	if b.Contains(1, 0.5) || b.Contains(0.5, 1) {
		t.Error("max edges must be outside")
	}
}

func TestInventory_Stack(t *testing.T) {
	inv := NewInventory([]Token{{1, 1, 0}, {1, 1, 1}})
	inv.Push(Token{2, 2, 0})

	top, ok := inv.Peek()
	if !ok || top != (Token{2, 2, 0}) {
		t.Fatalf("Peek() = %v, %v", top, ok)
	}

	got, ok := inv.Pop()
	if !ok || got != (Token{2, 2, 0}) {
		t.Errorf("Pop() = %v, want 2:2#0", got)
	}

	if !inv.Remove(Token{1, 1, 0}) {
		t.Error("Remove existing token returned false")
	}
	if inv.Remove(Token{9, 9, 9}) {
		t.Error("Remove missing token returned true")
	}
	if inv.Len() != 1 {
		t.Errorf("Len() = %d, want 1", inv.Len())
	}

	inv.Pop()
	if _, ok := inv.Pop(); ok {
		t.Error("Pop on empty inventory must report false")
	}
}

func TestInventory_TokensIsCopy(t *testing.T) {
	inv := NewInventory([]Token{{0, 0, 0}})
	tokens := inv.Tokens()
	tokens[0].Serial = 42

	top, _ := inv.Peek()
	if top.Serial != 0 {
		t.Error("Tokens() must return a copy")
	}
}
