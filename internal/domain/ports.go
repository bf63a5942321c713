package domain

import "context"

type HotelRepository interface {
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, code int64) (Hotel, error)
	Cities(ctx context.Context) ([]string, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (UserAccount, error)
	Create(ctx context.Context, u UserAccount) (UserAccount, error)
	Update(ctx context.Context, email string, p UserPatch) error
}

// SessionStore maps opaque tokens to account emails. Tokens are generated at
// login; the store must be safe for concurrent requests.
type SessionStore interface {
	Put(token, email string)
	Resolve(token string) (string, bool)
	Delete(token string)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Queries & pages

type SortOrder string

const (
	SortNone            SortOrder = ""
	SortPriceLowToHigh  SortOrder = "priceLowToHigh"
	SortPriceHighToLow  SortOrder = "priceHighToLow"
)

// PriceRange bounds are inclusive. Unparseable caller input is carried as NaN,
// which fails every comparison, so a bad bound never matches anything.
type PriceRange struct {
	Start float64
	End   float64
}

type FilterSpec struct {
	City        string
	StarRatings []float64
	Price       *PriceRange
	SortBy      SortOrder
}

type Paging struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
}

type HotelsPage struct {
	Items        []Hotel
	TotalResults int
	Paging       Paging
}

type ReviewsPage struct {
	Items  []Review
	Meta   ReviewMeta
	Paging Paging
}
