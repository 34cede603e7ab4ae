package text

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func testSource(t *testing.T, opts ...SourceOption) *FontSource {
	t.Helper()
	source, err := NewFontSource(goregular.TTF, opts...)
	if err != nil {
		t.Fatalf("NewFontSource failed: %v", err)
	}
	t.Cleanup(func() { _ = source.Close() })
	return source
}

func TestNewFontSource(t *testing.T) {
	source := testSource(t)
	if got := source.Name(); got != "Go" {
		t.Errorf("Name() = %q, want %q", got, "Go")
	}
	if source.Parsed().UnitsPerEm() <= 0 {
		t.Errorf("UnitsPerEm() = %d, want > 0", source.Parsed().UnitsPerEm())
	}
}

func TestNewFontSourceEmptyData(t *testing.T) {
	_, err := NewFontSource(nil)
	if !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) error = %v, want ErrEmptyFontData", err)
	}
}

func TestNewFontSourceGarbage(t *testing.T) {
	if _, err := NewFontSource([]byte("not a font at all")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestNewFontSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	source, err := NewFontSourceFromFile(path)
	if err != nil {
		t.Fatalf("NewFontSourceFromFile failed: %v", err)
	}
	defer func() { _ = source.Close() }()

	if _, err := NewFontSourceFromFile(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGlyphOutline(t *testing.T) {
	source := testSource(t)

	outline, err := source.GlyphOutline('A', 100)
	if err != nil {
		t.Fatalf("GlyphOutline('A') failed: %v", err)
	}
	if outline.IsEmpty() {
		t.Fatal("expected segments for 'A'")
	}
	if outline.Segments[0].Op != OutlineOpMoveTo {
		t.Errorf("first op = %v, want MoveTo", outline.Segments[0].Op)
	}
	// Glyphs sit on the baseline with Y pointing down.
	if outline.Bounds.MaxY > 1 || outline.Bounds.MinY > -50 {
		t.Errorf("unexpected bounds for 'A': %+v", outline.Bounds)
	}
	if outline.Advance <= 0 {
		t.Errorf("Advance = %v, want > 0", outline.Advance)
	}
}

func TestGlyphOutlineSpaceIsEmpty(t *testing.T) {
	source := testSource(t)
	outline, err := source.GlyphOutline(' ', 64)
	if err != nil {
		t.Fatalf("GlyphOutline(' ') failed: %v", err)
	}
	if !outline.IsEmpty() {
		t.Errorf("expected no segments for space, got %d", len(outline.Segments))
	}
}

func TestGlyphOutlineMissingGlyph(t *testing.T) {
	source := testSource(t)
	if source.HasGlyph('の') {
		t.Fatal("Go Regular should not cover hiragana")
	}
	_, err := source.GlyphOutline('の', 64)
	if !errors.Is(err, ErrMissingGlyph) {
		t.Errorf("error = %v, want ErrMissingGlyph", err)
	}
}

func TestGlyphOutlineInvalidSize(t *testing.T) {
	source := testSource(t)
	if _, err := source.GlyphOutline('A', 0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("error = %v, want ErrInvalidSize", err)
	}
}

func TestFontSourceClose(t *testing.T) {
	source, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if err := source.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := source.GlyphOutline('A', 10); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("error after Close = %v, want ErrSourceClosed", err)
	}
	if source.HasGlyph('A') {
		t.Error("HasGlyph after Close should be false")
	}
}

func TestFontSourceCopyPanics(t *testing.T) {
	source := testSource(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for copied FontSource")
		}
	}()
	copied := &FontSource{addr: source.addr, parsed: source.parsed}
	copied.Name()
}

func TestParsersAgree(t *testing.T) {
	ximage := testSource(t)
	gotext := testSource(t, WithParser(GoTextParser{}))

	for _, r := range []rune{'A', 'g', 'o', '8'} {
		a, err := ximage.GlyphOutline(r, 100)
		if err != nil {
			t.Fatalf("ximage %q: %v", r, err)
		}
		b, err := gotext.GlyphOutline(r, 100)
		if err != nil {
			t.Fatalf("gotext %q: %v", r, err)
		}
		if a.GID != b.GID {
			t.Errorf("%q: GID %d vs %d", r, a.GID, b.GID)
		}
		for _, d := range []float64{
			a.Bounds.MinX - b.Bounds.MinX,
			a.Bounds.MinY - b.Bounds.MinY,
			a.Bounds.MaxX - b.Bounds.MaxX,
			a.Bounds.MaxY - b.Bounds.MaxY,
		} {
			if d < -1 || d > 1 {
				t.Errorf("%q: bounds differ: ximage %+v gotext %+v", r, a.Bounds, b.Bounds)
				break
			}
		}
	}
}

func TestGoTextParserMissingGlyph(t *testing.T) {
	source := testSource(t, WithParser(GoTextParser{}))
	if _, err := source.GlyphOutline('の', 64); !errors.Is(err, ErrMissingGlyph) {
		t.Errorf("error = %v, want ErrMissingGlyph", err)
	}
}

func TestWithParserNilKeepsDefault(t *testing.T) {
	source := testSource(t, WithParser(nil))
	if _, ok := source.Parsed().(*ximageParsedFont); !ok {
		t.Errorf("parsed font = %T, want *ximageParsedFont", source.Parsed())
	}
}

func TestFontMetrics(t *testing.T) {
	for _, p := range []FontParser{XImageParser{}, GoTextParser{}} {
		source := testSource(t, WithParser(p))
		m := source.Parsed().Metrics(100)
		if m.Ascent <= 0 || m.Descent >= 0 {
			t.Errorf("%T: unexpected metrics %+v", p, m)
		}
		if m.Height() <= m.Ascent {
			t.Errorf("%T: Height() = %v, want > Ascent", p, m.Height())
		}
	}
}

func TestGlyphOutlineCached(t *testing.T) {
	source := testSource(t)
	a, err := source.GlyphOutline('A', 48)
	if err != nil {
		t.Fatalf("GlyphOutline failed: %v", err)
	}
	b, _ := source.GlyphOutline('A', 48)
	if a != b {
		t.Error("second lookup at the same size should return the cached outline")
	}
	c, _ := source.GlyphOutline('A', 24)
	if c == a {
		t.Error("a different size must not share the cached outline")
	}
	if got := source.outlines.Len(); got != 2 {
		t.Errorf("cache holds %d outlines, want 2", got)
	}
}

func TestWithOutlineCacheLimit(t *testing.T) {
	source := testSource(t, WithOutlineCache(2))
	for _, r := range "ABC" {
		if _, err := source.GlyphOutline(r, 32); err != nil {
			t.Fatalf("GlyphOutline(%q) failed: %v", r, err)
		}
	}
	if got := source.outlines.Len(); got != 2 {
		t.Errorf("cache holds %d outlines, want 2", got)
	}
}
