package images

import (
	"testing"

	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// fixed is a sizer pre-seeded with known intrinsic sizes so tests
// need no files on disk.
func fixed(sizes map[string]Size) *Sizer {
	s := NewSizer(Size{W: 300, H: 200})
	for k, v := range sizes {
		s.cache[k] = v
	}
	return s
}

func newPlacer(sizes map[string]Size) (*Placer, *surface.Headless) {
	surf := surface.NewHeadless(480, 595)
	surf.AddPage()
	p := NewPlacer(surf, theme.Default().Images)
	p.Sizer = fixed(sizes)
	return p, surf
}

func TestSizerFallback(t *testing.T) {
	s := NewSizer(Size{W: 300, H: 200})
	sz := s.Probe("no/such/file.png")
	if sz.W != 300 || sz.H != 200 {
		t.Fatalf("fallback size = %+v", sz)
	}
	// memoized
	if again := s.Probe("no/such/file.png"); again != sz {
		t.Fatalf("probe not memoized: %+v vs %+v", again, sz)
	}
}

func TestGridRowsOfThreeAndTwo(t *testing.T) {
	sizes := map[string]Size{}
	paths := []string{"a", "b", "c", "d", "e"}
	for _, p := range paths {
		sizes[p] = Size{W: 100, H: 100}
	}
	p, surf := newPlacer(sizes)
	h := p.PlaceGrid(28, 28, 420, paths)
	if h <= 0 {
		t.Fatalf("grid height = %g", h)
	}
	imgs := surf.Page(1).Images
	if len(imgs) != 5 {
		t.Fatalf("drew %d images, want 5", len(imgs))
	}
	// first three share a row, last two sit below
	if imgs[0].Rect.Y != imgs[1].Rect.Y || imgs[1].Rect.Y != imgs[2].Rect.Y {
		t.Fatal("first row not aligned")
	}
	if imgs[3].Rect.Y <= imgs[0].Rect.Y {
		t.Fatal("second row must be below the first")
	}
	if imgs[3].Rect.Y != imgs[4].Rect.Y {
		t.Fatal("second row not aligned")
	}
	// second row of two is centered
	rowW := imgs[3].Rect.W + imageGap + imgs[4].Rect.W
	wantX := 28 + (420-rowW)/2
	if imgs[3].Rect.X != wantX {
		t.Fatalf("second row x = %g, want %g", imgs[3].Rect.X, wantX)
	}
}

func TestGridScalesWideRow(t *testing.T) {
	sizes := map[string]Size{
		"w1": {W: 400, H: 100},
		"w2": {W: 400, H: 100},
		"w3": {W: 400, H: 100},
	}
	p, surf := newPlacer(sizes)
	p.PlaceGrid(28, 28, 200, []string{"w1", "w2", "w3"})
	imgs := surf.Page(1).Images
	total := float64(len(imgs)-1) * imageGap
	for _, im := range imgs {
		total += im.Rect.W
	}
	if total > 200+0.001 {
		t.Fatalf("row width %g exceeds available 200", total)
	}
	// aspect preserved under scaling
	r := imgs[0].Rect
	if got := r.W / r.H; got < 3.99 || got > 4.01 {
		t.Fatalf("aspect = %g, want 4", got)
	}
}

func TestRoadsignsRightAlignedAndShrunk(t *testing.T) {
	sizes := map[string]Size{
		"narrow": {W: 60, H: 120},  // aspect 0.5, normal
		"square": {W: 100, H: 100}, // attention, shrinks
	}
	p, surf := newPlacer(sizes)
	p.PlaceRoadsigns(28, 28, 190, []string{"narrow", "square"})
	imgs := surf.Page(1).Images
	if len(imgs) != 2 {
		t.Fatalf("drew %d images, want 2", len(imgs))
	}
	if imgs[0].Rect.H != 25 {
		t.Fatalf("normal sign height = %g, want 25", imgs[0].Rect.H)
	}
	if imgs[1].Rect.H != 15 {
		t.Fatalf("attention sign height = %g, want 15", imgs[1].Rect.H)
	}
	right := imgs[1].Rect.X + imgs[1].Rect.W
	if right < 217.9 || right > 218.1 {
		t.Fatalf("row right edge = %g, want flush with 218", right)
	}
}

func TestRoadsignsNarrowColumnOnePerRow(t *testing.T) {
	sizes := map[string]Size{
		"s1": {W: 60, H: 120},
		"s2": {W: 60, H: 120},
	}
	p, surf := newPlacer(sizes)
	p.PlaceRoadsigns(28, 28, 100, []string{"s1", "s2"})
	imgs := surf.Page(1).Images
	if imgs[0].Rect.Y == imgs[1].Rect.Y {
		t.Fatal("narrow column must stack signs one per row")
	}
}

func TestPlanFloatDefersWhenCramped(t *testing.T) {
	p, _ := newPlacer(map[string]Size{"pic": {W: 160, H: 160}})
	f := p.PlanFloat(28, 500, 190, 30, "pic")
	if !f.Defer {
		t.Fatal("float must defer when under 60% of its height remains")
	}
	f = p.PlanFloat(28, 100, 190, 300, "pic")
	if f.Defer {
		t.Fatal("float must place with ample space")
	}
	if f.Image.X+f.Image.W != 28+190 {
		t.Fatalf("float not right-aligned: %+v", f.Image)
	}
	if f.Reserve <= 0 {
		t.Fatal("float must reserve displacement height")
	}
	if !f.Exclusion.Intersects(f.Image) {
		t.Fatal("exclusion must cover the image")
	}
}
