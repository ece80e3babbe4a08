package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/corpusmaker"
)

// Ensure LoggingRenderer implements corpusmaker.Renderer.
var _ corpusmaker.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   corpusmaker.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next corpusmaker.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(nodes []corpusmaker.Node, cfg *corpusmaker.RenderConfig) (out *corpusmaker.Rendering, err error) {
	defer func(begin time.Time) {
		var chars, spans int
		if out != nil {
			chars = out.Len()
			spans = len(out.Annotations)
		}
		r.logger.Info("render",
			"nodes", len(nodes),
			"chars", chars,
			"spans", spans,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(nodes, cfg)
}
