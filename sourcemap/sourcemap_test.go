package sourcemap

import "testing"

func TestRangeJoin(t *testing.T) {
	a := Range{Start: 5, Len: 3}  // [5,8)
	b := Range{Start: 10, Len: 2} // [10,12)
	got := a.Join(b)
	if got.Start != 5 || got.End() != 12 {
		t.Errorf("Join = %+v, want Start=5 End=12", got)
	}
}

func TestLineOf(t *testing.T) {
	m := New("abc\ndef\nghi")
	cases := []struct {
		offset, want int
	}{
		{0, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3}, {10, 3},
	}
	for _, c := range cases {
		if got := m.LineOf(c.offset); got != c.want {
			t.Errorf("LineOf(%d) = %d, want %d", c.offset, got, c.want)
		}
	}
}

func TestLineText(t *testing.T) {
	m := New("first\r\nsecond\nthird")
	if got := m.LineText(1); got != "first" {
		t.Errorf("LineText(1) = %q, want %q", got, "first")
	}
	if got := m.LineText(2); got != "second" {
		t.Errorf("LineText(2) = %q, want %q", got, "second")
	}
	if got := m.LineText(3); got != "third" {
		t.Errorf("LineText(3) = %q, want %q", got, "third")
	}
}

func TestSlice(t *testing.T) {
	m := New("0123456789")
	if got := m.Slice(Range{Start: 2, Len: 3}); got != "234" {
		t.Errorf("Slice = %q, want %q", got, "234")
	}
	// clamped to bounds
	if got := m.Slice(Range{Start: 8, Len: 10}); got != "89" {
		t.Errorf("Slice (clamped) = %q, want %q", got, "89")
	}
}

func TestCodeUnderlinerSingleLine(t *testing.T) {
	m := New("ItemLevel >= BAD\nShow")
	r := Range{Start: 13, Len: 3} // "BAD"
	under := m.CodeUnderliner(r)
	if len(under) != 1 {
		t.Fatalf("got %d underlines, want 1: %+v", len(under), under)
	}
	u := under[0]
	if u.Line != 1 {
		t.Errorf("Line = %d, want 1", u.Line)
	}
	if u.LineText != "ItemLevel >= BAD" {
		t.Errorf("LineText = %q", u.LineText)
	}
	if u.UnderlineFrom != 13 || u.UnderlineLen != 3 {
		t.Errorf("UnderlineFrom/Len = %d/%d, want 13/3", u.UnderlineFrom, u.UnderlineLen)
	}
}

func TestCodeUnderlinerMultiLine(t *testing.T) {
	m := New("one\ntwo\nthree")
	r := Range{Start: 2, Len: 6} // spans "e\ntwo\n"
	under := m.CodeUnderliner(r)
	if len(under) != 2 {
		t.Fatalf("got %d underlines, want 2: %+v", len(under), under)
	}
	if under[0].Line != 1 || under[1].Line != 2 {
		t.Errorf("lines = %d, %d, want 1, 2", under[0].Line, under[1].Line)
	}
}
