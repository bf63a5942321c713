package domain

// Hotel is one listing from the seed dataset. Price is the canonical numeric
// nightly rate; PriceDisplay keeps the comma-grouped source formatting for
// presentation only.
type Hotel struct {
	Code         int64
	Title        string
	Subtitle     string
	City         string
	Rating       float64
	Price        float64
	PriceDisplay string
	ImageURL     string
	Benefits     []string
	Reviews      []Review
}

// BookingEnquiry is the per-hotel checkout précis returned before payment.
type BookingEnquiry struct {
	Name                    string
	CancellationPolicy      string
	CheckInTime             string
	CheckOutTime            string
	CurrentNightRate        string
	MaxGuestsAllowed        int
	MaxRoomsAllowedPerGuest int
}
