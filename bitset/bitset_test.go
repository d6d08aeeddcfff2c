package bitset

import "testing"

func TestSetClearTest(t *testing.T) {
	s := New(10)
	if s.Test(3) {
		t.Fatal("expected bit 3 clear")
	}
	s.Set(3)
	if !s.Test(3) {
		t.Fatal("expected bit 3 set")
	}
	s.Clear(3)
	if s.Test(3) {
		t.Fatal("expected bit 3 clear after Clear")
	}
}

func TestGrowPreservesBits(t *testing.T) {
	s := New(4)
	s.Set(2)
	s.Grow(200)
	if !s.Test(2) {
		t.Fatal("bit 2 should survive Grow")
	}
	if s.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", s.Len())
	}
}

func TestTailBitsStayZero(t *testing.T) {
	s := New(3)
	s.Set(0)
	s.Set(1)
	s.Set(2)
	s.Not()
	// Only 3 logical bits; the remaining 61 bits of the backing word
	// must stay zero even after a full flip.
	if s.PopCount() != 0 {
		t.Fatalf("PopCount() = %d, want 0 after flipping a full 3-bit set", s.PopCount())
	}
}

func TestOrAndAndNot(t *testing.T) {
	a := New(8)
	b := New(8)
	a.Set(0)
	a.Set(1)
	b.Set(1)
	b.Set(2)

	or := a.Clone()
	or.Or(b)
	for i, want := range []bool{true, true, true, false} {
		if or.Test(i) != want {
			t.Fatalf("Or bit %d = %v, want %v", i, or.Test(i), want)
		}
	}

	and := a.Clone()
	and.And(b)
	if and.PopCount() != 1 || !and.Test(1) {
		t.Fatalf("And result wrong: %+v", and)
	}

	andNot := a.Clone()
	andNot.AndNot(b)
	if andNot.PopCount() != 1 || !andNot.Test(0) {
		t.Fatalf("AndNot result wrong: %+v", andNot)
	}
}

func TestFindFirstNext(t *testing.T) {
	s := New(70)
	s.Set(5)
	s.Set(64)
	s.Set(69)
	if s.FindFirst() != 5 {
		t.Fatalf("FindFirst() = %d, want 5", s.FindFirst())
	}
	if s.FindNext(5) != 64 {
		t.Fatalf("FindNext(5) = %d, want 64", s.FindNext(5))
	}
	if s.FindNext(64) != 69 {
		t.Fatalf("FindNext(64) = %d, want 69", s.FindNext(64))
	}
	if s.FindNext(69) != -1 {
		t.Fatalf("FindNext(69) = %d, want -1", s.FindNext(69))
	}
}

func TestShiftLeft(t *testing.T) {
	s := New(4)
	s.Set(0)
	s.ShiftLeft(66)
	if !s.Test(66) {
		t.Fatal("expected bit 66 set after ShiftLeft(66)")
	}
	if s.Test(0) {
		t.Fatal("expected bit 0 clear after ShiftLeft")
	}
}

func TestEqual(t *testing.T) {
	a := New(4)
	b := New(70)
	a.Set(1)
	b.Set(1)
	if !a.Equal(b) {
		t.Fatal("sets with the same logical contents but different backing length should be Equal")
	}
}
