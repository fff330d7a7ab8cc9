package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/hitset/pkg/hitset"
	"github.com/matzehuels/hitset/pkg/observability"
	"github.com/matzehuels/hitset/pkg/render"
	"github.com/matzehuels/hitset/pkg/set"
)

// Render formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Render draws inst with cover highlighted in the given format.
// Rendered output is not cached.
func (r *Runner) Render(ctx context.Context, inst hitset.Instance[string], cover set.Set[string], format string) ([]byte, error) {
	if format != FormatDOT && format != FormatSVG {
		return nil, fmt.Errorf("unsupported render format %q (want %s or %s)", format, FormatDOT, FormatSVG)
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	dot := render.ToDOT(inst, cover)
	var (
		out []byte
		err error
	)
	if format == FormatSVG {
		out, err = render.RenderSVG(ctx, dot)
	} else {
		out = []byte(dot)
	}

	elapsed := time.Since(start)
	hooks.OnRenderComplete(ctx, format, len(out), elapsed, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rendered", "format", format, "bytes", len(out), "duration", elapsed)
	return out, nil
}
