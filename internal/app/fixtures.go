package app

// Canned payloads for the endpoints the front-end reads but never writes.
// These stay static for the process lifetime, like the fixture hotels.

type Destination struct {
	Code     int64  `json:"code"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func PopularDestinations() []Destination {
	return []Destination{
		{Code: 1211, Name: "Mumbai", ImageURL: "/images/cities/mumbai.jpg"},
		{Code: 1212, Name: "Bangkok", ImageURL: "/images/cities/bangkok.jpg"},
		{Code: 1213, Name: "London", ImageURL: "/images/cities/london.jpg"},
		{Code: 1214, Name: "Dubai", ImageURL: "/images/cities/dubai.jpg"},
		{Code: 1215, Name: "Oslo", ImageURL: "/images/cities/oslo.jpg"},
	}
}

type FilterOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Value string `json:"value,omitempty"`
}

type VerticalFilter struct {
	FilterID string         `json:"filterId"`
	Title    string         `json:"title"`
	Filters  []FilterOption `json:"filters"`
}

func VerticalFilters() []VerticalFilter {
	return []VerticalFilter{
		{
			FilterID: "star_ratings",
			Title:    "Star ratings",
			Filters: []FilterOption{
				{ID: "5_star_rating", Title: "5 Star", Value: "5"},
				{ID: "4_star_rating", Title: "4 Star", Value: "4"},
				{ID: "3_star_rating", Title: "3 Star", Value: "3"},
			},
		},
		{
			FilterID: "propety_type",
			Title:    "Property type",
			Filters: []FilterOption{
				{ID: "prop_type_hotel", Title: "Hotel"},
				{ID: "prop_type_apartment", Title: "Apartment"},
				{ID: "prop_type_villa", Title: "Villa"},
			},
		},
	}
}

type Booking struct {
	BookingID    string `json:"bookingId"`
	BookingDate  string `json:"bookingDate"`
	HotelName    string `json:"hotelName"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	TotalFare    string `json:"totalFare"`
}

func Bookings() []Booking {
	return []Booking{
		{BookingID: "BKG123", BookingDate: "2024-01-10", HotelName: "Seaside Resort", CheckInDate: "2024-01-20", CheckOutDate: "2024-01-25", TotalFare: "14,500"},
		{BookingID: "BKG124", BookingDate: "2024-01-03", HotelName: "Mountain Retreat", CheckInDate: "2024-02-15", CheckOutDate: "2024-02-20", TotalFare: "5,890"},
		{BookingID: "BKG125", BookingDate: "2024-01-11", HotelName: "City Central Hotel", CheckInDate: "2024-03-01", CheckOutDate: "2024-03-05", TotalFare: "21,700"},
	}
}

type PaymentMethod struct {
	ID         string `json:"id"`
	CardType   string `json:"cardType"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
}

func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "1", CardType: "Visa", CardNumber: "**** **** **** 1234", ExpiryDate: "08/26"},
		{ID: "2", CardType: "MasterCard", CardNumber: "**** **** **** 5678", ExpiryDate: "07/24"},
		{ID: "3", CardType: "American Express", CardNumber: "**** **** **** 9012", ExpiryDate: "05/25"},
	}
}

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func Countries() []Country {
	return []Country{
		{Name: "India", Code: "IN"},
		{Name: "United States", Code: "US"},
		{Name: "United Kingdom", Code: "UK"},
		{Name: "Thailand", Code: "TH"},
		{Name: "United Arab Emirates", Code: "AE"},
		{Name: "Norway", Code: "NO"},
		{Name: "Germany", Code: "DE"},
		{Name: "France", Code: "FR"},
	}
}
