package mock

import "github.com/fwojciec/corpusmaker"

var _ corpusmaker.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of corpusmaker.Renderer.
type Renderer struct {
	RenderFn func(nodes []corpusmaker.Node, cfg *corpusmaker.RenderConfig) (*corpusmaker.Rendering, error)
}

func (r *Renderer) Render(nodes []corpusmaker.Node, cfg *corpusmaker.RenderConfig) (*corpusmaker.Rendering, error) {
	return r.RenderFn(nodes, cfg)
}
