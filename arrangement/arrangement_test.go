package arrangement

import (
	"testing"

	"github.com/mtsarch/isonet/bary"
)

func TestNewHasOneCellFourFaces(t *testing.T) {
	c := New()
	if len(c.Cells) != 1 {
		t.Fatalf("New() cells = %d, want 1", len(c.Cells))
	}
	if len(c.Faces) != 4 || len(c.Verts) != 4 {
		t.Fatalf("New() faces=%d verts=%d, want 4,4", len(c.Faces), len(c.Verts))
	}
}

func TestBuildSinglePlaneSplitsIntoTwoCells(t *testing.T) {
	// A plane positive at corner 0, negative at corners 1,2,3 bisects
	// the tet into exactly two sub-cells.
	pl := bary.Plane{1, -1, -1, -1}
	c, err := Build([]bary.Plane{pl})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Cells) != 2 {
		t.Fatalf("Cells = %d, want 2", len(c.Cells))
	}
}

func TestBuildDegeneratePlaneRejected(t *testing.T) {
	_, err := Build([]bary.Plane{{0, 0, 0, 0}})
	if err == nil {
		t.Fatalf("expected error for degenerate plane")
	}
}

func TestBuildAllSameSignKeepsOneCell(t *testing.T) {
	pl := bary.Plane{1, 2, 3, 4}
	c, err := Build([]bary.Plane{pl})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Cells) != 1 {
		t.Fatalf("Cells = %d, want 1 (plane does not cross the tet)", len(c.Cells))
	}
}

func TestBuildSinglePlaneCellsHaveOppositeSigns(t *testing.T) {
	pl := bary.Plane{1, -1, -1, -1}
	c, err := Build([]bary.Plane{pl})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Cells) != 2 {
		t.Fatalf("Cells = %d, want 2", len(c.Cells))
	}
	if c.Cells[0].Signs.Test(0) == c.Cells[1].Signs.Test(0) {
		t.Fatalf("the two cells split by plane 0 should disagree on its sign")
	}
}

func TestBuildSinglePlaneCapFaceKnowsBothCells(t *testing.T) {
	pl := bary.Plane{1, -1, -1, -1}
	c, err := Build([]bary.Plane{pl})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var capFaces int
	for _, f := range c.Faces {
		if f.Plane != 0 {
			continue
		}
		capFaces++
		if f.PosCell == NoCell || f.NegCell == NoCell {
			t.Fatalf("cap face should know both neighboring cells, got PosCell=%d NegCell=%d", f.PosCell, f.NegCell)
		}
		if !c.Cells[f.PosCell].Signs.Test(0) {
			t.Fatalf("PosCell should be positive wrt plane 0")
		}
		if c.Cells[f.NegCell].Signs.Test(0) {
			t.Fatalf("NegCell should be negative wrt plane 0")
		}
	}
	if capFaces != 2 {
		t.Fatalf("expected 2 cap faces (one per half-tet), got %d", capFaces)
	}
}
