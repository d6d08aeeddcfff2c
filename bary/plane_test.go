package bary

import "testing"

func TestEquivalentIdenticalPlanes(t *testing.T) {
	p := Plane{1, -2, 0, 3}
	q := Plane{1, -2, 0, 3}
	same, flipped := p.Equivalent(q)
	if !same || flipped {
		t.Fatalf("expected identical planes to merge with flipped=false, got same=%v flipped=%v", same, flipped)
	}
}

func TestEquivalentScaledPlane(t *testing.T) {
	p := Plane{1, -2, 0, 3}
	q := Plane{2, -4, 0, 6}
	same, flipped := p.Equivalent(q)
	if !same || flipped {
		t.Fatalf("expected positively-scaled plane to merge with flipped=false, got same=%v flipped=%v", same, flipped)
	}
}

func TestEquivalentNegatedPlane(t *testing.T) {
	p := Plane{1, -2, 0, 3}
	q := Plane{-1, 2, 0, -3}
	same, flipped := p.Equivalent(q)
	if !same || !flipped {
		t.Fatalf("expected negated plane to merge with flipped=true, got same=%v flipped=%v", same, flipped)
	}
}

func TestEquivalentDistinctPlanes(t *testing.T) {
	p := Plane{1, -2, 0, 3}
	q := Plane{1, -2, 0.5, 3}
	if same, _ := p.Equivalent(q); same {
		t.Fatalf("expected distinct planes not to merge")
	}
}

func TestEquivalentDegeneratePlanes(t *testing.T) {
	p := Plane{0, 0, 0, 0}
	q := Plane{0, 0, 0, 0}
	same, flipped := p.Equivalent(q)
	if !same || flipped {
		t.Fatalf("expected two zero planes to merge with flipped=false, got same=%v flipped=%v", same, flipped)
	}
}
