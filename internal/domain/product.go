package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Amount is a currency-agnostic integer price. Upstream feeds sometimes
// deliver prices as display strings with thousands separators ("1,499");
// those decode by stripping every non-digit rune. Values that carry no
// digits decode to 0 rather than failing the whole payload.
type Amount int64

// UnmarshalJSON accepts both JSON numbers and formatted strings.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = ParseAmount(s)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		// Malformed numeric values degrade to 0.
		*a = 0
		return nil
	}
	*a = Amount(n)
	return nil
}

// ParseAmount strips every non-digit rune and parses the remainder as a
// decimal integer. "12,345" parses to 12345; strings with no digits parse
// to 0.
func ParseAmount(s string) Amount {
	var v int64
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		seen = true
		v = v*10 + int64(r-'0')
	}
	if !seen {
		return 0
	}
	return Amount(v)
}

// DiscountPercent returns round((1 - price/original) * 100) when original
// exceeds price, else 0.
func DiscountPercent(price, original Amount) int {
	if original <= price || original <= 0 {
		return 0
	}
	return int(math.Round(float64(original-price) / float64(original) * 100))
}

// Product is a catalog entry as stored by the admin back-office.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         Amount    `json:"price"`
	OriginalPrice Amount    `json:"original_price,omitempty"`
	Colors        []string  `json:"colors,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
	CategoryID    *string   `json:"category_id,omitempty"`
	TagIDs        []string  `json:"tag_ids,omitempty"`
	JustIn        bool      `json:"just_in"`
	DefaultImage  string    `json:"default_image,omitempty"`
	ImagePublicID string    `json:"image_public_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
