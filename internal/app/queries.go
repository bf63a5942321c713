package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lvapl/StayFinder/internal/domain"
)

const (
	hotelsPageSize  = 6
	reviewsPageSize = 5
)

// descriptionParagraphs is served with every hotel detail; all hotels share
// the same copy.
var descriptionParagraphs = []string{
	"A serene getaway awaits at our luxurious hotel, blending comfort with first-class amenities.",
	"Experience the height of elegance in beautifully appointed rooms with sweeping cityscape views.",
	"Indulge in culinary delights at our in-house restaurants serving local and international cuisine.",
	"Unwind at our state-of-the-art spa and wellness centre, the perfect place to relax the senses.",
	"Set in the heart of the city, the hotel is an ideal base for tourists and business travellers alike.",
}

// HotelDetail is the full payload behind /hotel/{code}.
type HotelDetail struct {
	Hotel       domain.Hotel
	Description []string
}

// QueryService filters, sorts and paginates the hotel dataset, with
// read-through caching of the assembled pages.
type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListHotels(ctx context.Context, f domain.FilterSpec, page int) (domain.HotelsPage, error) {
	key := fmt.Sprintf("hotels:%s:%d", filterKey(f), page)
	var out domain.HotelsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	hotels, err := s.repo.ListHotels(ctx)
	if err != nil {
		return domain.HotelsPage{}, err
	}

	filtered := hotels[:0:0]
	for _, h := range hotels {
		if matches(h, f) {
			filtered = append(filtered, h)
		}
	}
	sortHotels(filtered, f.SortBy)

	paging := pageOf(len(filtered), page, hotelsPageSize)
	out = domain.HotelsPage{
		Items:        pageSlice(filtered, paging),
		TotalResults: len(filtered),
		Paging:       paging,
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) GetHotel(ctx context.Context, code int64) (HotelDetail, error) {
	key := fmt.Sprintf("hotel:%d", code)
	var out HotelDetail
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	h, err := s.repo.GetHotel(ctx, code)
	if err != nil {
		return HotelDetail{}, err
	}
	out = HotelDetail{Hotel: h, Description: descriptionParagraphs}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) GetReviews(ctx context.Context, code int64, page int) (domain.ReviewsPage, error) {
	key := fmt.Sprintf("reviews:%d:%d", code, page)
	var out domain.ReviewsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	h, err := s.repo.GetHotel(ctx, code)
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	paging := pageOf(len(h.Reviews), page, reviewsPageSize)
	out = domain.ReviewsPage{
		Items:  pageSlice(h.Reviews, paging),
		Meta:   aggregateReviews(h.Reviews),
		Paging: paging,
	}

	// copy before caching so the cached value never aliases repo data
	cached := out
	cached.Items = append([]domain.Review(nil), out.Items...)
	_ = s.cache.Set(ctx, key, cached, int(s.cacheTTL.Seconds()))
	return out, nil
}

// BookingEnquiry assembles the checkout précis for one hotel.
func (s *QueryService) BookingEnquiry(ctx context.Context, code int64) (domain.BookingEnquiry, error) {
	h, err := s.repo.GetHotel(ctx, code)
	if err != nil {
		return domain.BookingEnquiry{}, err
	}
	return domain.BookingEnquiry{
		Name:                    h.Title,
		CancellationPolicy:      "Free cancellation until 1 day before check-in",
		CheckInTime:             "12:00 PM",
		CheckOutTime:            "10:00 AM",
		CurrentNightRate:        h.PriceDisplay,
		MaxGuestsAllowed:        5,
		MaxRoomsAllowedPerGuest: 3,
	}, nil
}

// NearbyHotels is the unfiltered city slice the landing page shows.
func (s *QueryService) NearbyHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	hotels, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Hotel
	for _, h := range hotels {
		if h.City == city {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *QueryService) AvailableCities(ctx context.Context) ([]string, error) {
	return s.repo.Cities(ctx)
}

// ---- predicates, sorting, paging ----

// matches applies the three predicates in fixed order: city, price, stars.
// A NaN price bound or star target fails its comparison, so malformed caller
// input excludes records instead of crashing.
func matches(h domain.Hotel, f domain.FilterSpec) bool {
	if f.City != "" && h.City != f.City {
		return false
	}
	if f.Price != nil && !(h.Price >= f.Price.Start && h.Price <= f.Price.End) {
		return false
	}
	if len(f.StarRatings) == 0 {
		return true
	}
	for _, t := range f.StarRatings {
		if math.Abs(h.Rating-t) <= 0.5 {
			return true
		}
	}
	return false
}

// sortHotels orders by the parsed numeric price, never the display string.
// SortNone preserves dataset order; the sort is stable so ties keep it too.
func sortHotels(hs []domain.Hotel, by domain.SortOrder) {
	switch by {
	case domain.SortPriceLowToHigh:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].Price < hs[j].Price })
	case domain.SortPriceHighToLow:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].Price > hs[j].Price })
	}
}

// pageOf computes 1-indexed paging with the (N-1)/size+1 total, which yields
// one (empty) page when N is zero. Out-of-range requests clamp to the last
// page; both hotel and review listings use the same policy.
func pageOf(total, requested, size int) domain.Paging {
	totalPages := (total-1)/size + 1
	page := requested
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return domain.Paging{CurrentPage: page, TotalPages: totalPages, PageSize: size}
}

func pageSlice[T any](items []T, pg domain.Paging) []T {
	start := (pg.CurrentPage - 1) * pg.PageSize
	if start >= len(items) {
		return nil
	}
	end := start + pg.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// aggregateReviews computes the review metadata block. Average is rounded
// half-up to one decimal and defined as 0 for an empty collection; star
// buckets count floor(rating) and silently drop values outside 1..5.
func aggregateReviews(rs []domain.Review) domain.ReviewMeta {
	counts := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	meta := domain.ReviewMeta{TotalReviews: len(rs), StarCounts: counts}
	if len(rs) == 0 {
		return meta
	}
	var sum float64
	for _, r := range rs {
		sum += r.Rating
		star := int(math.Floor(r.Rating))
		if star >= 1 && star <= 5 {
			counts[star]++
		}
	}
	mean := sum / float64(len(rs))
	meta.AverageRating = math.Floor(mean*10+0.5) / 10
	return meta
}

// filterKey renders a FilterSpec into a stable cache-key fragment.
func filterKey(f domain.FilterSpec) string {
	price := "-"
	if f.Price != nil {
		price = fmt.Sprintf("%g-%g", f.Price.Start, f.Price.End)
	}
	return fmt.Sprintf("%s|%v|%s|%s", f.City, f.StarRatings, price, f.SortBy)
}
