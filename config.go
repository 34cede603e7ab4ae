package nonnon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// GlyphCount is the number of characters a word must have.
const GlyphCount = 7

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("nonnon: invalid config")

// Config is the frozen configuration of a pipeline run.
// Every value is plain data; a Pipeline keeps its own deep copy.
type Config struct {
	Styles   []GlyphStyle `toml:"styles"`
	Curve    RevealCurve  `toml:"curve"`
	Timeline Timeline     `toml:"timeline"`
	Layout   Layout       `toml:"layout"`
	Reveal   Reveal       `toml:"reveal"`
	Output   Output       `toml:"output"`
}

// GlyphStyle is the per-character entry of the style table.
// Index i always styles the i-th character of the input.
type GlyphStyle struct {
	Size        int         `toml:"size"`
	Rotation    float64     `toml:"rotation"` // degrees, clockwise
	Fill        HexColor    `toml:"fill"`
	Offset      image.Point `toml:"offset"`
	HeightScale float64     `toml:"height_scale"`
}

// ScaledHeight returns the glyph height after the vertical stretch.
func (s GlyphStyle) ScaledHeight() int {
	return int(float64(s.Size)*s.HeightScale + 0.5)
}

// Timeline selects the base animation frames and their zones.
// Frames in [First, RampStart) carry no text, frames in [RampStart, RampEnd]
// reveal the word, frames in (RampEnd, Last] show it fully.
type Timeline struct {
	First     int `toml:"first"`
	RampStart int `toml:"ramp_start"`
	RampEnd   int `toml:"ramp_end"`
	Last      int `toml:"last"`

	// AssetPattern turns a frame index into an asset identifier.
	AssetPattern string `toml:"asset_pattern"`

	// Intro is an optional asset whose frames are prepended unchanged.
	Intro string `toml:"intro"`

	// DefaultDelayMs replaces zero source frame delays.
	DefaultDelayMs int `toml:"default_delay_ms"`

	// Prefetch is how many source frames are fetched ahead of compositing.
	Prefetch int `toml:"prefetch"`
}

// AssetID returns the asset identifier of a frame index.
func (t Timeline) AssetID(index int) string {
	return fmt.Sprintf(t.AssetPattern, index)
}

// Frames returns the number of source frame indices in the timeline.
func (t Timeline) Frames() int {
	return t.Last - t.First + 1
}

// Zone classifies a source frame index.
func (t Timeline) Zone(index int) Zone {
	switch {
	case index < t.First || index > t.Last:
		return ZoneOutside
	case index < t.RampStart:
		return ZonePlain
	case index <= t.RampEnd:
		return ZoneRamp
	default:
		return ZoneSteady
	}
}

// Zone is the compositing treatment of a source frame.
type Zone int

const (
	// ZoneOutside is a frame index outside the timeline.
	ZoneOutside Zone = iota
	// ZonePlain frames are passed through without text.
	ZonePlain
	// ZoneRamp frames show the word partially revealed.
	ZoneRamp
	// ZoneSteady frames show the whole word.
	ZoneSteady
)

// String returns the string representation of the zone.
func (z Zone) String() string {
	switch z {
	case ZonePlain:
		return "plain"
	case ZoneRamp:
		return "ramp"
	case ZoneSteady:
		return "steady"
	default:
		return "outside"
	}
}

// Layout holds the geometry of glyph rendering and word assembly.
type Layout struct {
	// GlyphCanvasFactor sizes each glyph canvas as a multiple of its size.
	GlyphCanvasFactor float64 `toml:"glyph_canvas_factor"`

	// StrokeWidth is the outline stroke drawn in the fill color.
	StrokeWidth float64 `toml:"stroke_width"`

	// WordMargin is added to the summed glyph advances.
	WordMargin int `toml:"word_margin"`

	// WordHeight is the height of the assembly canvas.
	WordHeight int `toml:"word_height"`

	// BaselineOffset moves the word anchor below the frame center.
	BaselineOffset int `toml:"baseline_offset"`
}

// Reveal configures how partially revealed words are drawn.
type Reveal struct {
	Mode        RevealMode `toml:"mode"`
	Perspective float64    `toml:"perspective"`
	FoldDegrees float64    `toml:"fold_degrees"`
}

// Output is the canonical size and palette of the encoded animation.
type Output struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Colors int `toml:"colors"`

	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int `toml:"loop_count"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Styles: []GlyphStyle{
			{Size: 80, Rotation: -12, Fill: mustHex("#dd188b"), Offset: image.Pt(0, 0), HeightScale: 2},
			{Size: 70, Rotation: -2, Fill: mustHex("#dd188b"), Offset: image.Pt(70, 75), HeightScale: 1},
			{Size: 72, Rotation: -10, Fill: mustHex("#f57315"), Offset: image.Pt(132, 45), HeightScale: 1.2},
			{Size: 54, Rotation: 6, Fill: mustHex("#5ac02e"), Offset: image.Pt(200, 70), HeightScale: 1.2},
			{Size: 54, Rotation: -8, Fill: mustHex("#5ac02e"), Offset: image.Pt(245, 75), HeightScale: 1.2},
			{Size: 64, Rotation: -14, Fill: mustHex("#12a7c5"), Offset: image.Pt(286, 34), HeightScale: 1.6},
			{Size: 72, Rotation: 10, Fill: mustHex("#12a7c5"), Offset: image.Pt(335, 10), HeightScale: 2},
		},
		Curve: RevealCurve{6, 6, 15, 24, 24, 61, 81, 93, 93, 95, 109, 119, 123, 123, 133, 134, 135, 135},
		Timeline: Timeline{
			First:          107,
			RampStart:      107,
			RampEnd:        123,
			Last:           200,
			AssetPattern:   "nonnon%04d.gif",
			DefaultDelayMs: 70,
			Prefetch:       1,
		},
		Layout: Layout{
			GlyphCanvasFactor: 3,
			StrokeWidth:       2,
			WordMargin:        100,
			WordHeight:        200,
			BaselineOffset:    30,
		},
		Reveal: Reveal{
			Mode:        RevealPerspective,
			Perspective: 800,
			FoldDegrees: 70,
		},
		Output: Output{
			Width:  640,
			Height: 360,
			Colors: 256,
		},
	}
}

// Mini returns a copy of c with the small output preset (340×200, 100 colors).
func (c Config) Mini() Config {
	m := c.Clone()
	m.Output.Width = 340
	m.Output.Height = 200
	m.Output.Colors = 100
	return m
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Styles = slices.Clone(c.Styles)
	c.Curve = slices.Clone(c.Curve)
	return c
}

// WordWidth returns the width of the word assembly canvas: the sum of
// size − ⌊size/10⌋ over all styles plus the margin.
func (c Config) WordWidth() int {
	w := c.Layout.WordMargin
	for _, s := range c.Styles {
		w += s.Size - s.Size/10
	}
	return w
}

// Validate checks that all configuration values are within acceptable ranges.
func (c Config) Validate() error {
	if len(c.Styles) != GlyphCount {
		return fmt.Errorf("%w: styles must have %d entries, got %d", ErrInvalidConfig, GlyphCount, len(c.Styles))
	}
	for i, s := range c.Styles {
		if s.Size <= 0 {
			return fmt.Errorf("%w: styles[%d].size must be > 0, got %d", ErrInvalidConfig, i, s.Size)
		}
		if s.HeightScale <= 0 {
			return fmt.Errorf("%w: styles[%d].height_scale must be > 0, got %v", ErrInvalidConfig, i, s.HeightScale)
		}
	}

	if err := c.Curve.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	t := c.Timeline
	if t.First > t.RampStart || t.RampStart > t.RampEnd+1 || t.RampEnd > t.Last {
		return fmt.Errorf("%w: timeline must satisfy first <= ramp_start <= ramp_end+1 <= last+1, got %d/%d/%d/%d",
			ErrInvalidConfig, t.First, t.RampStart, t.RampEnd, t.Last)
	}
	if t.First < 0 {
		return fmt.Errorf("%w: timeline.first must be >= 0, got %d", ErrInvalidConfig, t.First)
	}
	if strings.Contains(fmt.Sprintf(t.AssetPattern, 0), "%!") {
		return fmt.Errorf("%w: timeline.asset_pattern %q must contain one integer verb", ErrInvalidConfig, t.AssetPattern)
	}
	if t.DefaultDelayMs < 0 {
		return fmt.Errorf("%w: timeline.default_delay_ms must be >= 0, got %d", ErrInvalidConfig, t.DefaultDelayMs)
	}
	if t.Prefetch < 0 {
		return fmt.Errorf("%w: timeline.prefetch must be >= 0, got %d", ErrInvalidConfig, t.Prefetch)
	}

	l := c.Layout
	if l.StrokeWidth < 0 || l.GlyphCanvasFactor < 0 {
		return fmt.Errorf("%w: layout.stroke_width and glyph_canvas_factor must be >= 0", ErrInvalidConfig)
	}
	if l.WordHeight <= 0 || l.WordMargin < 0 {
		return fmt.Errorf("%w: layout.word_height must be > 0 and word_margin >= 0", ErrInvalidConfig)
	}

	switch c.Reveal.Mode {
	case RevealPerspective, RevealCrop, RevealSquash:
	default:
		return fmt.Errorf("%w: invalid reveal.mode %q: must be perspective, crop, or squash", ErrInvalidConfig, c.Reveal.Mode)
	}
	if c.Reveal.Perspective <= 0 {
		return fmt.Errorf("%w: reveal.perspective must be > 0, got %v", ErrInvalidConfig, c.Reveal.Perspective)
	}
	if c.Reveal.FoldDegrees <= 0 || c.Reveal.FoldDegrees > 90 {
		return fmt.Errorf("%w: reveal.fold_degrees must be in (0, 90], got %v", ErrInvalidConfig, c.Reveal.FoldDegrees)
	}

	o := c.Output
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: output size must be positive, got %dx%d", ErrInvalidConfig, o.Width, o.Height)
	}
	if o.Colors < 2 || o.Colors > 256 {
		return fmt.Errorf("%w: output.colors must be in [2, 256], got %d", ErrInvalidConfig, o.Colors)
	}
	if o.LoopCount < -1 {
		return fmt.Errorf("%w: output.loop_count must be >= -1, got %d", ErrInvalidConfig, o.LoopCount)
	}
	return nil
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML data over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// WriteTOML writes c as TOML.
func (c Config) WriteTOML(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// RevealMode selects how a partially revealed word is drawn.
type RevealMode string

const (
	// RevealPerspective folds the word up from the baseline row by row.
	RevealPerspective RevealMode = "perspective"
	// RevealCrop shows the top rows of the word.
	RevealCrop RevealMode = "crop"
	// RevealSquash scales the word to the target height.
	RevealSquash RevealMode = "squash"
)

// HexColor is an opaque-by-default color written as "#RRGGBB" or
// "#RRGGBBAA" in configuration files.
type HexColor color.NRGBA

// NRGBA returns the color as color.NRGBA.
func (h HexColor) NRGBA() color.NRGBA {
	return color.NRGBA(h)
}

// MarshalText implements encoding.TextMarshaler.
func (h HexColor) MarshalText() ([]byte, error) {
	s := fmt.Sprintf("#%02x%02x%02x", h.R, h.G, h.B)
	if h.A != 0xff {
		s += fmt.Sprintf("%02x", h.A)
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexColor) UnmarshalText(b []byte) error {
	c, err := ParseHexColor(string(b))
	if err != nil {
		return err
	}
	*h = HexColor(c)
	return nil
}

// ParseHexColor parses a "#RRGGBB" or "#RRGGBBAA" hex color string.
func ParseHexColor(hex string) (color.NRGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: must be 6 or 8 hex digits", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustHex(s string) HexColor {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return HexColor(c)
}
