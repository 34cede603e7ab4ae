package nonnon

import (
	"log/slog"

	"github.com/gogpu/nonnon/anim"
	"github.com/gogpu/nonnon/fetch"
	"github.com/gogpu/nonnon/text"
)

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := nonnon.New(cfg,
//	    nonnon.WithFont(font),
//	    nonnon.WithFetcher(fetch.NewDir("assets")),
//	    nonnon.WithProgress(func(pr nonnon.Progress) {
//	        fmt.Printf("%s %d%%\n", pr.Step, pr.Percent)
//	    }),
//	)
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	font       *text.FontSource
	rasterizer text.Rasterizer
	fetcher    fetch.Fetcher
	decoder    anim.Decoder
	encoder    anim.Encoder
	progress   ProgressFunc
	logger     *slog.Logger
	strict     bool
}

// WithFont renders glyphs from font with the native rasterizer.
// WithRasterizer takes precedence when both are given.
func WithFont(font *text.FontSource) Option {
	return func(o *pipelineOptions) {
		o.font = font
	}
}

// WithRasterizer sets a custom glyph rasterizer, for example
// shellout.MagickRasterizer.
func WithRasterizer(r text.Rasterizer) Option {
	return func(o *pipelineOptions) {
		o.rasterizer = r
	}
}

// WithFetcher sets where source frame assets come from. It is required.
func WithFetcher(f fetch.Fetcher) Option {
	return func(o *pipelineOptions) {
		o.fetcher = f
	}
}

// WithDecoder replaces the default anim.GIFDecoder.
func WithDecoder(d anim.Decoder) Option {
	return func(o *pipelineOptions) {
		o.decoder = d
	}
}

// WithEncoder replaces the default anim.GIFEncoder.
func WithEncoder(e anim.Encoder) Option {
	return func(o *pipelineOptions) {
		o.encoder = e
	}
}

// WithProgress sets a callback for progress reports.
func WithProgress(fn ProgressFunc) Option {
	return func(o *pipelineOptions) {
		o.progress = fn
	}
}

// WithLogger sets the logger of the pipeline. Without it the package
// logger (see SetLogger) is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *pipelineOptions) {
		o.logger = l
	}
}

// WithStrict restricts input text to hiragana, katakana and kanji.
func WithStrict(strict bool) Option {
	return func(o *pipelineOptions) {
		o.strict = strict
	}
}
