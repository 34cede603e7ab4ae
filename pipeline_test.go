package nonnon

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/nonnon/anim"
	"github.com/gogpu/nonnon/fetch"
	"github.com/gogpu/nonnon/pixel"
	"github.com/gogpu/nonnon/text"
)

// squareRasterizer draws every glyph as a filled square inside a
// transparent border.
type squareRasterizer struct {
	fail rune
}

func (r squareRasterizer) Rasterize(spec text.GlyphSpec) (*pixel.Surface, error) {
	if spec.Char == r.fail {
		return nil, errors.New("no glyph")
	}
	side := int(spec.Size)
	s := pixel.New(side+4, side+4)
	for y := 2; y < side+2; y++ {
		for x := 2; x < side+2; x++ {
			s.SetNRGBA(x, y, spec.Fill)
		}
	}
	return s, nil
}

func (r squareRasterizer) Trim(s *pixel.Surface) *pixel.Surface {
	return pixel.Trim(s)
}

// recordingEncoder keeps the frames it was asked to encode.
type recordingEncoder struct {
	frames        []anim.Frame
	width, height int
}

func (e *recordingEncoder) Encode(frames []anim.Frame, width, height int) ([]byte, error) {
	e.frames = frames
	e.width, e.height = width, height
	return []byte("GIF89a"), nil
}

// countingFetcher counts calls and can cancel a context after n fetches.
type countingFetcher struct {
	fetch.Fetcher
	calls    atomic.Int32
	cancelAt int32
	cancel   context.CancelFunc
}

func (f *countingFetcher) Fetch(ctx context.Context, assetID string) ([]byte, error) {
	if n := f.calls.Add(1); f.cancel != nil && n == f.cancelAt {
		f.cancel()
	}
	return f.Fetcher.Fetch(ctx, assetID)
}

// gifAsset encodes a w×h animation of n solid sub-images.
func gifAsset(t *testing.T, w, h, n, delayCS int) []byte {
	t.Helper()
	palette := color.Palette{color.NRGBA{A: 255}, color.NRGBA{R: 40, G: 90, B: 160, A: 255}}
	g := &gif.GIF{}
	for i := range n {
		img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		for j := range img.Pix {
			img.Pix[j] = uint8((i + j) % 2)
		}
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, delayCS)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

func timelineAssets(t *testing.T, cfg Config) fetch.Memory {
	t.Helper()
	asset := gifAsset(t, 160, 90, 1, 5)
	m := fetch.Memory{}
	for i := cfg.Timeline.First; i <= cfg.Timeline.Last; i++ {
		m[cfg.Timeline.AssetID(i)] = asset
	}
	return m
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Output.Width = 64
	cfg.Output.Height = 36
	cfg.Output.Colors = 16
	return cfg
}

func TestNewRequiresCollaborators(t *testing.T) {
	cfg := smallConfig()

	_, err := New(cfg, WithRasterizer(squareRasterizer{}))
	assert.ErrorIs(t, err, ErrNoFetcher)

	_, err = New(cfg, WithFetcher(fetch.Memory{}))
	assert.ErrorIs(t, err, ErrNoRasterizer)

	bad := cfg.Clone()
	bad.Curve = nil
	_, err = New(bad, WithRasterizer(squareRasterizer{}), WithFetcher(fetch.Memory{}))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewCopiesConfig(t *testing.T) {
	cfg := smallConfig()
	p, err := New(cfg, WithRasterizer(squareRasterizer{}), WithFetcher(fetch.Memory{}))
	require.NoError(t, err)

	cfg.Styles[0].Size = 1
	cfg.Curve[0] = 1
	assert.Equal(t, 80, p.Config().Styles[0].Size)
	assert.Equal(t, 6, p.Config().Curve[0])
}

func TestRunRejectsShortText(t *testing.T) {
	f := &countingFetcher{Fetcher: fetch.Memory{}}
	p, err := New(smallConfig(), WithRasterizer(squareRasterizer{}), WithFetcher(f))
	require.NoError(t, err)

	blob, err := p.Run(context.Background(), "のんのんび")
	assert.Nil(t, blob)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Zero(t, f.calls.Load())
}

func TestRunStrict(t *testing.T) {
	cfg := smallConfig()
	p, err := New(cfg, WithRasterizer(squareRasterizer{}), WithFetcher(timelineAssets(t, cfg)), WithStrict(true))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), "ABCDEFG")
	assert.ErrorIs(t, err, ErrNotJapanese)
}

func TestRunFrameCount(t *testing.T) {
	cfg := smallConfig()
	enc := &recordingEncoder{}
	p, err := New(cfg,
		WithRasterizer(squareRasterizer{}),
		WithFetcher(timelineAssets(t, cfg)),
		WithEncoder(enc),
	)
	require.NoError(t, err)

	blob, err := p.Run(context.Background(), "のんのんびより")
	require.NoError(t, err)
	assert.Equal(t, []byte("GIF89a"), blob)

	require.Len(t, enc.frames, 94)
	assert.Equal(t, 64, enc.width)
	assert.Equal(t, 36, enc.height)
	for _, f := range enc.frames {
		assert.Equal(t, 64, f.Surface.Width())
		assert.Equal(t, 36, f.Surface.Height())
		assert.Equal(t, 50, f.DelayMs)
	}
}

func TestRunSkipsMissingAndBrokenAssets(t *testing.T) {
	cfg := smallConfig()
	assets := timelineAssets(t, cfg)
	delete(assets, cfg.Timeline.AssetID(150))
	assets[cfg.Timeline.AssetID(160)] = []byte("not a gif")

	enc := &recordingEncoder{}
	var reports []Progress
	p, err := New(cfg,
		WithRasterizer(squareRasterizer{}),
		WithFetcher(assets),
		WithEncoder(enc),
		WithProgress(func(pr Progress) { reports = append(reports, pr) }),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), "のんのんびより")
	require.NoError(t, err)
	assert.Len(t, enc.frames, 92)

	require.NotEmpty(t, reports)
	assert.Equal(t, StepGlyphs, reports[0].Step)
	assert.Equal(t, Progress{Step: StepEncode, Percent: 100}, reports[len(reports)-1])
	for i := 1; i < len(reports); i++ {
		assert.GreaterOrEqual(t, reports[i].Percent, reports[i-1].Percent)
	}
	for _, pr := range reports {
		assert.NotEqual(t, StepIntro, pr.Step, "no intro configured")
	}
}

func TestRunLogsRecords(t *testing.T) {
	cfg := smallConfig()
	assets := timelineAssets(t, cfg)
	delete(assets, cfg.Timeline.AssetID(150))

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	p, err := New(cfg,
		WithRasterizer(squareRasterizer{}),
		WithFetcher(assets),
		WithEncoder(&recordingEncoder{}),
		WithLogger(log),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), "のんのんびより")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"run started\"")
	assert.Contains(t, out, "msg=\"word assembled\"")
	assert.Contains(t, out, "level=WARN msg=\"source frame skipped\" index=150")
	assert.Contains(t, out, "msg=\"run finished\" frames=93 skipped=1")
	assert.NotContains(t, out, "level=DEBUG")
}

// blankDecoder ignores the asset bytes and returns one transparent frame.
type blankDecoder struct {
	width, height int
}

func (d blankDecoder) Decode([]byte) ([]anim.Frame, error) {
	return []anim.Frame{{Surface: pixel.New(d.width, d.height), DelayMs: 70}}, nil
}

func TestRunMissingRampFrameKeepsCurve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reveal.Mode = RevealCrop
	cfg.Timeline.Last = 125
	cfg.Output.Width = 600
	cfg.Output.Height = 400

	assets := fetch.Memory{}
	for i := cfg.Timeline.First; i <= cfg.Timeline.Last; i++ {
		if i != 110 {
			assets[cfg.Timeline.AssetID(i)] = []byte("frame")
		}
	}

	enc := &recordingEncoder{}
	p, err := New(cfg,
		WithRasterizer(squareRasterizer{}),
		WithFetcher(assets),
		WithDecoder(blankDecoder{width: 600, height: 400}),
		WithEncoder(enc),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), "のんのんびより")
	require.NoError(t, err)
	require.Len(t, enc.frames, 18)

	// Source frames 107, 108, 109, 111, 112 take curve steps 0 to 4.
	for i := range 5 {
		b := pixel.FindBounds(enc.frames[i].Surface)
		assert.Equal(t, cfg.Curve.Height(i), b.Height(), "output frame %d", i)
		assert.Equal(t, 298, b.Bottom, "output frame %d", i)
	}
	assert.Equal(t, cfg.Curve.Max(), pixel.FindBounds(enc.frames[17].Surface).Height())
}

func TestRunIntro(t *testing.T) {
	cfg := smallConfig()
	cfg.Timeline.Intro = "no.gif"
	assets := timelineAssets(t, cfg)
	assets["no.gif"] = gifAsset(t, 320, 180, 2, 0)

	enc := &recordingEncoder{}
	var intro []Progress
	p, err := New(cfg, WithRasterizer(squareRasterizer{}), WithFetcher(assets), WithEncoder(enc),
		WithProgress(func(pr Progress) {
			if pr.Step == StepIntro {
				intro = append(intro, pr)
			}
		}))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), "のんのんびより")
	require.NoError(t, err)
	assert.Equal(t, []Progress{{StepIntro, 25}, {StepIntro, 30}}, intro)
	require.Len(t, enc.frames, 96)
	assert.Equal(t, 70, enc.frames[0].DelayMs, "zero delay replaced by the default")
	assert.Equal(t, 64, enc.frames[0].Surface.Width())

	delete(assets, "no.gif")
	_, err = p.Run(context.Background(), "のんのんびより")
	require.NoError(t, err)
	assert.Len(t, enc.frames, 94)
}

func TestRunRasterizeErrorAborts(t *testing.T) {
	cfg := smallConfig()
	p, err := New(cfg, WithRasterizer(squareRasterizer{fail: 'び'}), WithFetcher(timelineAssets(t, cfg)))
	require.NoError(t, err)

	blob, err := p.Run(context.Background(), "のんのんびより")
	assert.Nil(t, blob)
	var re *RasterizeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 'び', re.Char)
}

func TestRunNoFramesIsEncodeError(t *testing.T) {
	p, err := New(smallConfig(), WithRasterizer(squareRasterizer{}), WithFetcher(fetch.Memory{}))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), "のんのんびより")
	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.ErrorIs(t, err, anim.ErrNoFrames)
}

func TestRunCancelled(t *testing.T) {
	cfg := smallConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err := New(cfg, WithRasterizer(squareRasterizer{}), WithFetcher(timelineAssets(t, cfg)))
	require.NoError(t, err)
	blob, err := p.Run(ctx, "のんのんびより")
	assert.Nil(t, blob)
	assert.ErrorIs(t, err, context.Canceled)

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	f := &countingFetcher{Fetcher: timelineAssets(t, cfg), cancelAt: 20, cancel: cancel}
	p, err = New(cfg, WithRasterizer(squareRasterizer{}), WithFetcher(f))
	require.NoError(t, err)
	blob, err = p.Run(ctx, "のんのんびより")
	assert.Nil(t, blob)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, f.calls.Load(), int32(94))
}

func TestRunEndToEnd(t *testing.T) {
	src, err := text.NewFontSource(goregular.TTF)
	require.NoError(t, err)
	defer src.Close()

	cfg := smallConfig()
	p, err := New(cfg, WithFont(src), WithFetcher(timelineAssets(t, cfg)))
	require.NoError(t, err)

	blob, err := p.Run(context.Background(), "Nonnon!")
	require.NoError(t, err)

	g, err := gif.DecodeAll(bytes.NewReader(blob))
	require.NoError(t, err)
	assert.Len(t, g.Image, 94)
	assert.Equal(t, 64, g.Config.Width)
	assert.Equal(t, 36, g.Config.Height)
	for _, d := range g.Delay {
		assert.Equal(t, 5, d)
	}
}
