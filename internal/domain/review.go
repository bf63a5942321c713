package domain

type Review struct {
	ReviewerName string
	Rating       float64
	Title        string
	Text         string
	Date         string
	Verified     bool
}

// ReviewMeta aggregates a hotel's full review collection, independent of the
// requested page.
type ReviewMeta struct {
	TotalReviews  int
	AverageRating float64     // mean rounded half-up to 1 decimal; 0 when empty
	StarCounts    map[int]int // floor(rating) buckets 1..5
}
