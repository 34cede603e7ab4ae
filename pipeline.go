package nonnon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/nonnon/anim"
	"github.com/gogpu/nonnon/fetch"
	"github.com/gogpu/nonnon/pixel"
	"github.com/gogpu/nonnon/text"
)

// contextEncoder is implemented by encoders that can be cancelled.
type contextEncoder interface {
	EncodeContext(ctx context.Context, frames []anim.Frame, width, height int) ([]byte, error)
}

// Pipeline turns a seven character text into a personalized animation.
//
// A Pipeline holds no per-run state; Run may be called concurrently when
// the configured collaborators allow it.
type Pipeline struct {
	cfg        Config
	rasterizer text.Rasterizer
	fetcher    fetch.Fetcher
	decoder    anim.Decoder
	encoder    anim.Encoder
	progress   ProgressFunc
	log        *slog.Logger
	strict     bool
}

// New creates a pipeline from a copy of cfg.
//
// A fetcher and either a font or a rasterizer are required. Decoding and
// encoding default to anim.GIFDecoder and anim.GIFEncoder configured from
// cfg.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o pipelineOptions
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{
		cfg:        cfg.Clone(),
		rasterizer: o.rasterizer,
		fetcher:    o.fetcher,
		decoder:    o.decoder,
		encoder:    o.encoder,
		progress:   o.progress,
		log:        o.logger,
		strict:     o.strict,
	}
	if p.rasterizer == nil && o.font != nil {
		p.rasterizer = text.NewRasterizer(o.font)
	}
	if p.rasterizer == nil {
		return nil, ErrNoRasterizer
	}
	if p.fetcher == nil {
		return nil, ErrNoFetcher
	}
	if p.decoder == nil {
		p.decoder = anim.GIFDecoder{DefaultDelayMs: cfg.Timeline.DefaultDelayMs}
	}
	if p.encoder == nil {
		p.encoder = anim.GIFEncoder{Colors: cfg.Output.Colors, LoopCount: cfg.Output.LoopCount}
	}
	if p.log == nil {
		p.log = Logger()
	}
	return p, nil
}

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg.Clone()
}

// Run validates s, renders the word and returns the encoded animation.
//
// Source frames that cannot be fetched or decoded are logged and skipped.
// Validation, rasterization and encoding failures abort the run, as does
// cancelling ctx, in which case ctx.Err() is returned.
func (p *Pipeline) Run(ctx context.Context, s string) ([]byte, error) {
	start := time.Now()
	runes, err := p.validate(s)
	if err != nil {
		return nil, err
	}
	p.log.Info("run started", "text", string(runes))
	tracker := &progressTracker{fn: p.progress}
	if p.cfg.Timeline.Intro == "" {
		tracker.skip = StepIntro
	}

	word, err := p.renderWord(ctx, runes, tracker)
	if err != nil {
		return nil, err
	}

	comp := NewCompositor(word, p.cfg)
	comp.log = p.log

	var frames []anim.Frame
	tracker.report(StepIntro, 0)
	if id := p.cfg.Timeline.Intro; id != "" {
		intro, err := p.load(ctx, id)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			p.log.Warn("intro skipped", "asset", id, "err", err)
		default:
			frames = append(frames, p.resize(intro)...)
		}
	}
	tracker.report(StepIntro, 1)

	composited, skipped, err := p.compositeFrames(ctx, comp, tracker)
	if err != nil {
		return nil, err
	}
	frames = append(frames, composited...)

	tracker.report(StepEncode, 0)
	blob, err := p.encode(ctx, frames)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	tracker.report(StepEncode, 1)

	p.log.Info("run finished",
		"frames", len(frames), "skipped", skipped, "bytes", len(blob), "elapsed", time.Since(start))
	return blob, nil
}

func (p *Pipeline) validate(s string) ([]rune, error) {
	if p.strict {
		return ValidateJapanese(s)
	}
	return ValidateText(s)
}

// renderWord rasterizes, trims and assembles the glyphs.
func (p *Pipeline) renderWord(ctx context.Context, runes []rune, tracker *progressTracker) (*pixel.Surface, error) {
	specs, err := GlyphSpecs(runes, p.cfg)
	if err != nil {
		return nil, err
	}

	tracker.report(StepGlyphs, 0)
	glyphs := make([]*pixel.Surface, len(specs))
	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := p.rasterizer.Rasterize(spec)
		if err != nil {
			var re *RasterizeError
			if !errors.As(err, &re) {
				err = &RasterizeError{Char: spec.Char, Err: err}
			}
			return nil, err
		}
		glyphs[i] = p.rasterizer.Trim(g)
		tracker.report(StepGlyphs, float64(i+1)/float64(len(specs)))
	}

	tracker.report(StepAssemble, 0)
	word, err := AssembleWord(glyphs, p.cfg)
	if err != nil {
		return nil, err
	}
	p.log.Info("word assembled", "width", word.Width(), "height", word.Height())
	tracker.report(StepAssemble, 1)
	return word, nil
}

// sourceFrame is one fetched and decoded timeline asset.
type sourceFrame struct {
	index  int
	frames []anim.Frame
	err    error
}

// compositeFrames fetches timeline assets ahead of the compositor and
// composites them in index order.
func (p *Pipeline) compositeFrames(ctx context.Context, comp *Compositor, tracker *progressTracker) ([]anim.Frame, int, error) {
	t := p.cfg.Timeline
	total := t.Frames()
	ch := make(chan sourceFrame, t.Prefetch)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ch)
		for index := t.First; index <= t.Last; index++ {
			frames, err := p.load(gctx, t.AssetID(index))
			if cerr := gctx.Err(); cerr != nil {
				return cerr
			}
			select {
			case ch <- sourceFrame{index: index, frames: frames, err: err}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var out []anim.Frame
	skipped, done := 0, 0
	tracker.report(StepFrames, 0)
	for sf := range ch {
		done++
		if sf.err != nil {
			skipped++
			p.log.Warn("source frame skipped", "index", sf.index, "err", sf.err)
		} else {
			frameStart := time.Now()
			out = append(out, comp.Composite(sf.index, sf.frames)...)
			p.log.Debug("source frame done", "index", sf.index, "elapsed", time.Since(frameStart))
		}
		tracker.report(StepFrames, float64(done)/float64(total))
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return out, skipped, nil
}

// load fetches and decodes one asset. Failures are *AssetFetchError or
// *DecodeError so the caller can skip the frame.
func (p *Pipeline) load(ctx context.Context, assetID string) ([]anim.Frame, error) {
	data, err := p.fetcher.Fetch(ctx, assetID)
	if err != nil {
		var fe *AssetFetchError
		if !errors.As(err, &fe) {
			err = &AssetFetchError{AssetID: assetID, Err: err}
		}
		return nil, err
	}
	frames, err := p.decoder.Decode(data)
	if err != nil {
		var de *DecodeError
		if !errors.As(err, &de) {
			err = &DecodeError{Err: fmt.Errorf("%s: %w", assetID, err)}
		}
		return nil, err
	}
	if len(frames) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("%s: %w", assetID, anim.ErrNoFrames)}
	}
	return frames, nil
}

// resize normalizes frames to the output size without drawing the word.
func (p *Pipeline) resize(frames []anim.Frame) []anim.Frame {
	out := make([]anim.Frame, len(frames))
	for i, f := range frames {
		out[i] = anim.Frame{
			Surface: f.Surface.Resize(p.cfg.Output.Width, p.cfg.Output.Height),
			DelayMs: f.DelayMs,
		}
	}
	return out
}

func (p *Pipeline) encode(ctx context.Context, frames []anim.Frame) ([]byte, error) {
	w, h := p.cfg.Output.Width, p.cfg.Output.Height
	if ce, ok := p.encoder.(contextEncoder); ok {
		return ce.EncodeContext(ctx, frames, w, h)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.encoder.Encode(frames, w, h)
}
