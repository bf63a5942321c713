package memory

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lvapl/StayFinder/internal/domain"
)

//go:embed fixtures/hotels.json
var hotelsFixture []byte

// seedHotel mirrors the fixture file, where price and ratings are strings
// (price comma-grouped). Both are parsed once here so everything downstream
// works on numbers.
type seedHotel struct {
	HotelCode int64        `json:"hotelCode"`
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle"`
	City      string       `json:"city"`
	Price     string       `json:"price"`
	Ratings   string       `json:"ratings"`
	ImageURL  string       `json:"imageUrl"`
	Benefits  []string     `json:"benefits"`
	Reviews   []seedReview `json:"reviews"`
}

type seedReview struct {
	ReviewerName string  `json:"reviewerName"`
	Rating       float64 `json:"rating"`
	Title        string  `json:"title"`
	Review       string  `json:"review"`
	Date         string  `json:"date"`
	Verified     bool    `json:"verified"`
}

func loadHotels() ([]domain.Hotel, error) {
	var seeds []seedHotel
	if err := json.Unmarshal(hotelsFixture, &seeds); err != nil {
		return nil, fmt.Errorf("decode hotels fixture: %w", err)
	}
	out := make([]domain.Hotel, 0, len(seeds))
	for _, s := range seeds {
		price, err := ParsePrice(s.Price)
		if err != nil {
			return nil, fmt.Errorf("hotel %d: %w", s.HotelCode, err)
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(s.Ratings), 64)
		if err != nil {
			return nil, fmt.Errorf("hotel %d: bad ratings %q", s.HotelCode, s.Ratings)
		}
		h := domain.Hotel{
			Code:         s.HotelCode,
			Title:        s.Title,
			Subtitle:     s.Subtitle,
			City:         s.City,
			Rating:       rating,
			Price:        price,
			PriceDisplay: s.Price,
			ImageURL:     s.ImageURL,
			Benefits:     s.Benefits,
		}
		for _, r := range s.Reviews {
			h.Reviews = append(h.Reviews, domain.Review{
				ReviewerName: r.ReviewerName,
				Rating:       r.Rating,
				Title:        r.Title,
				Text:         r.Review,
				Date:         r.Date,
				Verified:     r.Verified,
			})
		}
		out = append(out, h)
	}
	return out, nil
}

// ParsePrice converts a comma-grouped amount like "18,900" to its numeric
// value.
func ParsePrice(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, fmt.Errorf("empty price")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price %q", s)
	}
	return v, nil
}

func seedUsers() []domain.UserAccount {
	return []domain.UserAccount{
		{
			ID: 1, Email: "user1@example.com", Password: "password1",
			FirstName: "John", LastName: "Doe", FullName: "John Doe",
			Phone: "1234567890", Country: "USA",
			IsPhoneVerified: true, IsEmailVerified: true,
		},
		{
			ID: 2, Email: "user2@example.com", Password: "password2",
			FirstName: "Jane", LastName: "Doe", FullName: "Jane Doe",
			Phone: "0987654321", Country: "UK",
			IsPhoneVerified: false, IsEmailVerified: true,
		},
	}
}
