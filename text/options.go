package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parser           FontParser
	outlineCacheSize int
}

// DefaultOutlineCacheSize is the number of glyph outlines a FontSource
// keeps by default.
const DefaultOutlineCacheSize = 256

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parser:           XImageParser{},
		outlineCacheSize: DefaultOutlineCacheSize,
	}
}

// WithParser specifies the font parser backend.
// The default is XImageParser, which uses golang.org/x/image/font/opentype.
// A nil parser keeps the default.
func WithParser(p FontParser) SourceOption {
	return func(c *sourceConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithOutlineCache sets how many glyph outlines the source keeps.
// Zero or less disables the limit.
func WithOutlineCache(size int) SourceOption {
	return func(c *sourceConfig) {
		c.outlineCacheSize = size
	}
}
