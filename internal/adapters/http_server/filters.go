package httpserver

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/lvapl/StayFinder/internal/domain"
)

// filterPayload mirrors the JSON the front-end serializes into the `filters`
// query parameter. Field values arrive loosely typed (checkbox values are
// strings, slider bounds may be numbers), so everything lands in `any` and is
// coerced afterwards.
type filterPayload struct {
	City        string `json:"city"`
	StarRatings []any  `json:"star_ratings"`
	PriceFilter *struct {
		Start any `json:"start"`
		End   any `json:"end"`
	} `json:"priceFilter"`
}

// parseFilterSpec decodes the filters/advancedFilters query params into a
// FilterSpec. Absent params mean no constraint; malformed JSON is a
// validation error. Unparseable numeric values become NaN so the affected
// predicate simply never matches.
func parseFilterSpec(filters, advanced string) (domain.FilterSpec, error) {
	var spec domain.FilterSpec

	if filters != "" {
		var p filterPayload
		if err := json.Unmarshal([]byte(filters), &p); err != nil {
			return domain.FilterSpec{}, domain.ErrValidation
		}
		spec.City = p.City
		for _, v := range p.StarRatings {
			spec.StarRatings = append(spec.StarRatings, toFloat(v))
		}
		if p.PriceFilter != nil {
			spec.Price = &domain.PriceRange{
				Start: toFloat(p.PriceFilter.Start),
				End:   toFloat(p.PriceFilter.End),
			}
		}
	}

	if advanced != "" {
		var list []map[string]any
		if err := json.Unmarshal([]byte(advanced), &list); err != nil {
			return domain.FilterSpec{}, domain.ErrValidation
		}
		for _, entry := range list {
			if v, ok := entry["sortBy"].(string); ok {
				switch domain.SortOrder(v) {
				case domain.SortPriceLowToHigh, domain.SortPriceHighToLow:
					spec.SortBy = domain.SortOrder(v)
				}
				break
			}
		}
	}

	return spec, nil
}

// toFloat coerces a loosely typed JSON value to float64, NaN when it cannot.
func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		s := strings.TrimSpace(t)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

// parsePage reads the 1-indexed currentPage query param, defaulting to 1.
func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
