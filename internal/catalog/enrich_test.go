package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
)

func TestDemoEnricher_BackfillsMissingFields(t *testing.T) {
	e := NewDemoEnricher(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		d := e.Enrich(domain.Product{ID: "p1", Name: "Silk Dupatta", Price: 1000})

		assert.GreaterOrEqual(t, int64(d.OriginalPrice), int64(1100), "markup at least 10%%")
		assert.LessOrEqual(t, int64(d.OriginalPrice), int64(1200), "markup at most 20%%")
		assert.Greater(t, d.DiscountPercent, 0)

		assert.GreaterOrEqual(t, d.Reviews, 10)
		assert.LessOrEqual(t, d.Reviews, 200)
		assert.GreaterOrEqual(t, d.Rating, 3.5)
		assert.LessOrEqual(t, d.Rating, 5.0)

		assert.NotEmpty(t, d.Colors)
		assert.NotEmpty(t, d.Sizes)
	}
}

func TestDemoEnricher_RespectsExistingData(t *testing.T) {
	e := NewDemoEnricher(rand.NewSource(1))

	src := domain.Product{
		ID:            "p1",
		Name:          "Banarasi Saree",
		Price:         1499,
		OriginalPrice: 2999,
		Colors:        []string{"#ff0000"},
		Sizes:         []string{"Free"},
	}
	d := e.Enrich(src)

	assert.Equal(t, domain.Amount(2999), d.OriginalPrice)
	assert.Equal(t, 50, d.DiscountPercent)
	assert.Equal(t, []string{"#ff0000"}, d.Colors)
	assert.Equal(t, []string{"Free"}, d.Sizes)
}

func TestDemoEnricher_JustInBadgeWins(t *testing.T) {
	e := NewDemoEnricher(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		d := e.Enrich(domain.Product{ID: "p1", Price: 100, JustIn: true})
		assert.Equal(t, "Just In", d.Badge)
	}
}

func TestDemoEnricher_DoesNotMutateSource(t *testing.T) {
	e := NewDemoEnricher(rand.NewSource(1))

	src := domain.Product{ID: "p1", Name: "Kurta", Price: 1000}
	_ = e.Enrich(src)

	assert.Equal(t, domain.Amount(0), src.OriginalPrice)
	assert.Nil(t, src.Colors)
	assert.Nil(t, src.Sizes)
}

func TestStaticEnricher(t *testing.T) {
	d := StaticEnricher{}.Enrich(domain.Product{
		ID:            "p1",
		Price:         750,
		OriginalPrice: 1000,
	})

	require.Equal(t, 25, d.DiscountPercent)
	assert.Zero(t, d.Reviews)
	assert.Zero(t, d.Rating)
	assert.Empty(t, d.Badge)
	assert.NotEmpty(t, d.Colors)
	assert.NotEmpty(t, d.Sizes)

	// No synthetic markup either.
	d = StaticEnricher{}.Enrich(domain.Product{ID: "p2", Price: 750})
	assert.Equal(t, domain.Amount(0), d.OriginalPrice)
	assert.Zero(t, d.DiscountPercent)
}
