package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
)

func productFixture(id, name string, price domain.Amount, justIn bool, created time.Time) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		Price:     price,
		JustIn:    justIn,
		CreatedAt: created,
	}
}

func fixtures() []domain.Product {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		productFixture("p1", "Red Scarf", 1499, true, base.Add(3*time.Hour)),
		productFixture("p2", "Blue Bag", 2999, false, base.Add(1*time.Hour)),
		productFixture("p3", "Silk Scarf", 999, false, base.Add(2*time.Hour)),
		productFixture("p4", "Cotton Kurta", 1999, true, base),
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Apply(fixtures(), Query{Search: "scarf"})
	assert.Equal(t, []string{"p1", "p3"}, ids(got))

	got = Apply(fixtures(), Query{Search: "SCARF"})
	assert.Equal(t, []string{"p1", "p3"}, ids(got))

	got = Apply(fixtures(), Query{Search: "velvet"})
	assert.Empty(t, got)
}

func TestApply_JustInFacet(t *testing.T) {
	got := Apply(fixtures(), Query{JustIn: JustInOnly})
	assert.Equal(t, []string{"p1", "p4"}, ids(got))

	got = Apply(fixtures(), Query{JustIn: JustInNone})
	assert.Equal(t, []string{"p2", "p3"}, ids(got))

	got = Apply(fixtures(), Query{JustIn: JustInAny})
	assert.Len(t, got, 4)
}

func TestApply_SortOrders(t *testing.T) {
	assert.Equal(t, []string{"p1", "p3", "p2", "p4"},
		ids(Apply(fixtures(), Query{Sort: SortDateDesc})))

	assert.Equal(t, []string{"p4", "p2", "p3", "p1"},
		ids(Apply(fixtures(), Query{Sort: SortDateAsc})))

	assert.Equal(t, []string{"p3", "p1", "p4", "p2"},
		ids(Apply(fixtures(), Query{Sort: SortPriceAsc})))
}

func TestApply_PriceSortsAreExactReverses(t *testing.T) {
	// Distinct prices only, so asc must be exactly the reverse of desc.
	asc := ids(Apply(fixtures(), Query{Sort: SortPriceAsc}))
	desc := ids(Apply(fixtures(), Query{Sort: SortPriceDesc}))

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestApply_StableOnPriceTies(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{
		productFixture("a", "One", 500, false, base),
		productFixture("b", "Two", 500, false, base.Add(time.Hour)),
		productFixture("c", "Three", 100, false, base),
		productFixture("d", "Four", 500, false, base),
	}

	got := Apply(products, Query{Sort: SortPriceAsc})
	// Tied items a, b, d keep their input order behind the cheaper c.
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(got))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := fixtures()
	before := ids(products)

	Apply(products, Query{Sort: SortPriceAsc})

	assert.Equal(t, before, ids(products))
}

func TestApply_DefaultSortIsDateDesc(t *testing.T) {
	assert.Equal(t,
		ids(Apply(fixtures(), Query{Sort: SortDateDesc})),
		ids(Apply(fixtures(), Query{})),
	)
}
