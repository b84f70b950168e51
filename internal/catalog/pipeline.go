package catalog

import "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"

// Pipeline composes the four derivation steps in their fixed order:
// filter, sort, enrich, reveal.
type Pipeline struct {
	enricher Enricher
}

// NewPipeline creates a pipeline using the given enricher.
func NewPipeline(enricher Enricher) *Pipeline {
	return &Pipeline{enricher: enricher}
}

// Run derives the visible grid for the query. The window is sized to the
// filtered total, so callers can keep invoking Reveal on it between runs.
func (p *Pipeline) Run(products []domain.Product, q Query, w *Window) []Display {
	matched := Apply(products, q)
	w.SetTotal(len(matched))

	visible := matched[:w.Visible()]
	out := make([]Display, len(visible))
	for i, prod := range visible {
		out[i] = p.enricher.Enrich(prod)
	}
	return out
}

// RunAll derives the full enriched result without a reveal window. Used by
// the HTTP surface when the client passes an explicit limit.
func (p *Pipeline) RunAll(products []domain.Product, q Query) []Display {
	matched := Apply(products, q)
	out := make([]Display, len(matched))
	for i, prod := range matched {
		out[i] = p.enricher.Enrich(prod)
	}
	return out
}
