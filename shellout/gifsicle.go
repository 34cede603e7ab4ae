package shellout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gogpu/nonnon/anim"
)

// GifsicleEncoder merges frames with gifsicle. Each frame is first written
// as a single-image GIF; gifsicle then joins them, sets the delays and
// reduces the global palette. It implements anim.Encoder.
type GifsicleEncoder struct {
	// Colors limits the output palette. Zero leaves it to gifsicle.
	Colors int

	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int

	// Command is the gifsicle binary, "gifsicle" when empty.
	Command string
}

var _ anim.Encoder = (*GifsicleEncoder)(nil)

// Encode implements anim.Encoder.
func (g *GifsicleEncoder) Encode(frames []anim.Frame, width, height int) ([]byte, error) {
	return g.EncodeContext(context.Background(), frames, width, height)
}

// EncodeContext is Encode with cancellation.
func (g *GifsicleEncoder) EncodeContext(ctx context.Context, frames []anim.Frame, width, height int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, &anim.EncodeError{Frame: -1, Err: anim.ErrNoFrames}
	}

	dir, err := os.MkdirTemp("", "nonnon-gifsicle-")
	if err != nil {
		return nil, &anim.EncodeError{Frame: -1, Err: err}
	}
	defer os.RemoveAll(dir)

	single := anim.GIFEncoder{Colors: g.Colors, Workers: 1}
	files := make([]string, len(frames))
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := single.Encode([]anim.Frame{f}, width, height)
		if err != nil {
			if ee, ok := err.(*anim.EncodeError); ok {
				ee.Frame = i
			}
			return nil, err
		}
		files[i] = filepath.Join(dir, fmt.Sprintf("f%04d.gif", i))
		if err := os.WriteFile(files[i], data, 0o600); err != nil {
			return nil, &anim.EncodeError{Frame: i, Err: err}
		}
	}

	out, err := run(ctx, g.command(), gifsicleArgs(frames, files, g.Colors, g.LoopCount)...)
	if err != nil {
		return nil, &anim.EncodeError{Frame: -1, Err: err}
	}
	return out, nil
}

func (g *GifsicleEncoder) command() string {
	if g.Command == "" {
		return "gifsicle"
	}
	return g.Command
}

func gifsicleArgs(frames []anim.Frame, files []string, colors, loopCount int) []string {
	args := []string{"--no-warnings"}
	switch {
	case loopCount == 0:
		args = append(args, "--loopcount=forever")
	case loopCount < 0:
		args = append(args, "--no-loopcount")
	default:
		args = append(args, "--loopcount="+strconv.Itoa(loopCount))
	}
	if colors > 0 {
		args = append(args, "--colors", strconv.Itoa(min(colors, anim.MaxColors)))
	}
	for i, f := range frames {
		cs := anim.DelayCentiseconds(f.DelayMs)
		args = append(args, "--delay="+strconv.Itoa(cs), files[i])
	}
	return args
}
