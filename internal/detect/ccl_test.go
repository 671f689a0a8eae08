package detect

import "testing"

// buildMask returns an all-background mask of the given size.
func buildMask(w, h int) []bool {
	mask := make([]bool, w*h)
	for i := range mask {
		mask[i] = true
	}
	return mask
}

// fillRect marks a rectangle of the mask as foreground. x1/y1 exclusive.
func fillRect(mask []bool, w, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mask[y*w+x] = false
		}
	}
}

func TestLabelComponents_SingleRectangle(t *testing.T) {
	mask := buildMask(100, 100)
	fillRect(mask, 100, 20, 30, 50, 70)

	comps := labelComponents(mask, 100, 100)
	if len(comps) != 1 {
		t.Fatalf("got %d components, want 1", len(comps))
	}

	c := comps[0]
	if c.x0 != 20 || c.y0 != 30 || c.x1 != 50 || c.y1 != 70 {
		t.Errorf("bounds (%d,%d)-(%d,%d), want (20,30)-(50,70)", c.x0, c.y0, c.x1, c.y1)
	}
	if c.area != 30*40 {
		t.Errorf("area %d, want %d", c.area, 30*40)
	}
}

func TestLabelComponents_SeparateRegionsStaySeparate(t *testing.T) {
	mask := buildMask(64, 64)
	fillRect(mask, 64, 2, 2, 10, 10)
	fillRect(mask, 64, 40, 40, 60, 60)

	comps := labelComponents(mask, 64, 64)
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2", len(comps))
	}
	// Reading order: top-left region first.
	if comps[0].x0 != 2 || comps[0].y0 != 2 {
		t.Errorf("first component at (%d,%d), want (2,2)", comps[0].x0, comps[0].y0)
	}
	if comps[1].x0 != 40 || comps[1].y0 != 40 {
		t.Errorf("second component at (%d,%d), want (40,40)", comps[1].x0, comps[1].y0)
	}
}

func TestLabelComponents_DiagonalIsNotConnected(t *testing.T) {
	// Two pixels touching only at a corner are distinct components under
	// 4-connectivity.
	mask := buildMask(4, 4)
	mask[0*4+0] = false
	mask[1*4+1] = false

	comps := labelComponents(mask, 4, 4)
	if len(comps) != 2 {
		t.Errorf("got %d components, want 2 (diagonal must not connect)", len(comps))
	}
}

func TestLabelComponents_UShapeMergesAcrossRows(t *testing.T) {
	// A U shape assigns different provisional labels to the two arms; the
	// bottom bar must union them into a single component.
	mask := buildMask(10, 10)
	fillRect(mask, 10, 1, 1, 3, 6) // left arm
	fillRect(mask, 10, 6, 1, 8, 6) // right arm
	fillRect(mask, 10, 1, 6, 8, 8) // bottom bar

	comps := labelComponents(mask, 10, 10)
	if len(comps) != 1 {
		t.Fatalf("got %d components, want 1", len(comps))
	}
	c := comps[0]
	if c.x0 != 1 || c.y0 != 1 || c.x1 != 8 || c.y1 != 8 {
		t.Errorf("bounds (%d,%d)-(%d,%d), want (1,1)-(8,8)", c.x0, c.y0, c.x1, c.y1)
	}
	wantArea := 2*5 + 2*5 + 7*2
	if c.area != wantArea {
		t.Errorf("area %d, want %d", c.area, wantArea)
	}
}

func TestLabelComponents_EmptyMask(t *testing.T) {
	comps := labelComponents(buildMask(32, 32), 32, 32)
	if len(comps) != 0 {
		t.Errorf("got %d components from an all-background mask, want 0", len(comps))
	}
}

func TestMergeComponents_WithinProximity(t *testing.T) {
	comps := []component{
		{x0: 0, y0: 0, x1: 10, y1: 10, area: 100},
		{x0: 15, y0: 0, x1: 25, y1: 10, area: 100},
	}

	clusters := mergeComponents(comps, 10)
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1 (gap 5 <= proximity 10)", len(clusters))
	}
	c := clusters[0]
	if c.X0 != 0 || c.X1 != 25 {
		t.Errorf("merged box x range [%d, %d), want [0, 25)", c.X0, c.X1)
	}
	if c.Area != 200 || c.Members != 2 {
		t.Errorf("Area=%d Members=%d, want 200 and 2", c.Area, c.Members)
	}
}

func TestMergeComponents_BeyondProximity(t *testing.T) {
	comps := []component{
		{x0: 0, y0: 0, x1: 10, y1: 10, area: 100},
		{x0: 30, y0: 0, x1: 40, y1: 10, area: 100},
	}

	clusters := mergeComponents(comps, 10)
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2 (gap 20 > proximity 10)", len(clusters))
	}
}

func TestMergeComponents_ChainReachesFixedPoint(t *testing.T) {
	// A and C are far apart, but each is near B; all three must collapse
	// into one cluster even though the A-C pair alone would not merge.
	comps := []component{
		{x0: 0, y0: 0, x1: 10, y1: 10, area: 100},
		{x0: 18, y0: 0, x1: 28, y1: 10, area: 100},
		{x0: 36, y0: 0, x1: 46, y1: 10, area: 100},
	}

	clusters := mergeComponents(comps, 10)
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1 via chained merge", len(clusters))
	}
	if clusters[0].Members != 3 {
		t.Errorf("Members=%d, want 3", clusters[0].Members)
	}
	if clusters[0].X1 != 46 {
		t.Errorf("merged box ends at %d, want 46", clusters[0].X1)
	}
}

func TestMergeComponents_ReadingOrder(t *testing.T) {
	comps := []component{
		{x0: 50, y0: 40, x1: 60, y1: 50, area: 100},
		{x0: 0, y0: 0, x1: 10, y1: 10, area: 100},
		{x0: 40, y0: 0, x1: 48, y1: 10, area: 80},
	}

	clusters := mergeComponents(comps, 5)
	if len(clusters) != 3 {
		t.Fatalf("got %d clusters, want 3", len(clusters))
	}
	if clusters[0].X0 != 0 || clusters[1].X0 != 40 || clusters[2].Y0 != 40 {
		t.Errorf("clusters not in reading order: %+v", clusters)
	}
}
