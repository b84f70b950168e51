package catalog

import (
	"math/rand"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
)

// Display is the projection of a product the grid renders. It is derived
// fresh from the source record on every pipeline run and never written back.
type Display struct {
	domain.Product

	DiscountPercent int     `json:"discount_percent"`
	Reviews         int     `json:"reviews"`
	Rating          float64 `json:"rating"`
	Badge           string  `json:"badge,omitempty"`
}

// Enricher fills in the display fields a product record is missing.
// Implementations decide where fallback values come from; the pipeline only
// requires that the source product is not mutated.
type Enricher interface {
	Enrich(p domain.Product) Display
}

// Fallbacks used when a product record carries no colors or sizes.
var (
	defaultColors = []string{"#1a1a2e", "#b00020", "#c9a227"}
	defaultSizes  = []string{"S", "M", "L", "XL"}
)

const badgeJustIn = "Just In"
const badgeBestseller = "Bestseller"

// DemoEnricher backfills missing display data with randomized filler:
// an original price 10-20% above the selling price, 10-200 reviews, a
// 3.5-5.0 rating, and a 30% chance of a "Bestseller" badge. This is
// placeholder display data for a catalog without real reviews or markdown
// history, not pricing logic. Seed the source for deterministic output.
type DemoEnricher struct {
	rng *rand.Rand
}

// NewDemoEnricher creates an enricher drawing from src.
func NewDemoEnricher(src rand.Source) *DemoEnricher {
	return &DemoEnricher{rng: rand.New(src)}
}

// Enrich implements Enricher.
func (e *DemoEnricher) Enrich(p domain.Product) Display {
	d := Display{Product: p}

	if d.OriginalPrice == 0 && d.Price > 0 {
		markup := 1.10 + e.rng.Float64()*0.10
		d.OriginalPrice = domain.Amount(float64(d.Price) * markup)
	}
	d.DiscountPercent = domain.DiscountPercent(d.Price, d.OriginalPrice)

	if len(d.Colors) == 0 {
		d.Colors = append([]string(nil), defaultColors...)
	}
	if len(d.Sizes) == 0 {
		d.Sizes = append([]string(nil), defaultSizes...)
	}

	d.Reviews = 10 + e.rng.Intn(191)     // 10..200
	d.Rating = 3.5 + e.rng.Float64()*1.5 // 3.5..5.0

	switch {
	case p.JustIn:
		d.Badge = badgeJustIn
	case e.rng.Float64() < 0.3:
		d.Badge = badgeBestseller
	}

	return d
}

// StaticEnricher derives only what the record itself supports: discount
// from a real original price, fallback colors and sizes. No synthetic
// ratings or badges beyond the just-in flag. Used where randomized filler
// is unwanted, e.g. admin previews and tests.
type StaticEnricher struct{}

// Enrich implements Enricher.
func (StaticEnricher) Enrich(p domain.Product) Display {
	d := Display{Product: p}
	d.DiscountPercent = domain.DiscountPercent(d.Price, d.OriginalPrice)

	if len(d.Colors) == 0 {
		d.Colors = append([]string(nil), defaultColors...)
	}
	if len(d.Sizes) == 0 {
		d.Sizes = append([]string(nil), defaultSizes...)
	}
	if p.JustIn {
		d.Badge = badgeJustIn
	}

	return d
}
