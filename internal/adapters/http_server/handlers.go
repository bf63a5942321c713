package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lvapl/StayFinder/internal/adapters/observability"
	"github.com/lvapl/StayFinder/internal/app"
	"github.com/lvapl/StayFinder/internal/domain"
)

type Handlers struct {
	Q    *app.QueryService
	Auth *app.AuthService
	Pay  *app.PaymentService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/verticalFilters", h.verticalFilters)
		r.Get("/hotel/{hotelCode}", h.getHotel)
		r.Get("/hotel/{hotelCode}/reviews", h.listReviews)
		r.Get("/hotel/{hotelCode}/booking/enquiry", h.bookingEnquiry)
		r.Put("/hotel/add-review", h.addReview)
		r.Get("/availableCities", h.availableCities)
		r.Get("/popularDestinations", h.popularDestinations)
		r.Get("/nearbyHotels", h.nearbyHotels)
		r.Get("/misc/countries", h.countries)
		r.Post("/payments/confirmation", h.confirmPayment)

		r.Route("/users", func(r chi.Router) {
			r.Get("/auth-user", h.authUser)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.Put("/register", h.register)
			r.Patch("/update-profile", h.updateProfile)
			r.Get("/bookings", h.bookings)
			r.Get("/payment-methods", h.paymentMethods)
		})
	})
}

// bearerToken pulls the session token out of the Authorization header; empty
// when absent.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func hotelCodeParam(r *http.Request) (int64, bool) {
	code, err := strconv.ParseInt(chi.URLParam(r, "hotelCode"), 10, 64)
	return code, err == nil
}

// ---- response shapes (the camelCase contract the front-end parses) ----

type hotelJSON struct {
	HotelCode int64    `json:"hotelCode"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	City      string   `json:"city"`
	Ratings   string   `json:"ratings"`
	Price     string   `json:"price"`
	ImageURL  string   `json:"imageUrl"`
	Benefits  []string `json:"benefits"`
}

func toHotelJSON(h domain.Hotel) hotelJSON {
	return hotelJSON{
		HotelCode: h.Code,
		Title:     h.Title,
		Subtitle:  h.Subtitle,
		City:      h.City,
		Ratings:   strconv.FormatFloat(h.Rating, 'f', -1, 64),
		Price:     h.PriceDisplay,
		ImageURL:  h.ImageURL,
		Benefits:  h.Benefits,
	}
}

type hotelDetailJSON struct {
	hotelJSON
	Description []string `json:"description"`
}

type reviewJSON struct {
	ReviewerName string  `json:"reviewerName"`
	Rating       float64 `json:"rating"`
	Title        string  `json:"title"`
	Review       string  `json:"review"`
	Date         string  `json:"date"`
	Verified     bool    `json:"verified"`
}

func toReviewJSON(r domain.Review) reviewJSON {
	return reviewJSON{
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Title:        r.Title,
		Review:       r.Text,
		Date:         r.Date,
		Verified:     r.Verified,
	}
}

type reviewMetaJSON struct {
	TotalReviews  int         `json:"totalReviews"`
	AverageRating float64     `json:"averageRating"`
	StarCounts    map[int]int `json:"starCounts"`
}

type userJSON struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	IsPhoneVerified bool   `json:"isPhoneVerified"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

// toUserJSON excludes the password by construction.
func toUserJSON(u domain.UserAccount) userJSON {
	return userJSON{
		ID:              strconv.FormatInt(u.ID, 10),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName,
		Email:           u.Email,
		Phone:           u.Phone,
		Country:         u.Country,
		IsPhoneVerified: u.IsPhoneVerified,
		IsEmailVerified: u.IsEmailVerified,
	}
}

type elements[T any] struct {
	Elements []T `json:"elements"`
}

func wrapElements[T any](in []T) elements[T] {
	if in == nil {
		in = []T{}
	}
	return elements[T]{Elements: in}
}

// ---- hotel queries ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r.URL.Query().Get("filters"), r.URL.Query().Get("advancedFilters"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "malformed filters payload")
		return
	}
	page := parsePage(r.URL.Query().Get("currentPage"))

	out, err := h.Q.ListHotels(r.Context(), spec, page)
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, "hotel search failed")
		return
	}
	items := make([]hotelJSON, 0, len(out.Items))
	for _, hotel := range out.Items {
		items = append(items, toHotelJSON(hotel))
	}
	writeJSON(w, http.StatusOK, envelope{
		Data:     wrapElements(items),
		Metadata: map[string]int{"totalResults": out.TotalResults},
		Paging:   &out.Paging,
	})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	code, ok := hotelCodeParam(r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, "hotel code must be a number")
		return
	}
	detail, err := h.Q.GetHotel(r.Context(), code)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "hotel not found")
		return
	}
	writeData(w, http.StatusOK, hotelDetailJSON{
		hotelJSON:   toHotelJSON(detail.Hotel),
		Description: detail.Description,
	})
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	code, ok := hotelCodeParam(r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, "hotel code must be a number")
		return
	}
	page := parsePage(r.URL.Query().Get("currentPage"))
	out, err := h.Q.GetReviews(r.Context(), code, page)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "hotel not found")
		return
	}
	items := make([]reviewJSON, 0, len(out.Items))
	for _, rv := range out.Items {
		items = append(items, toReviewJSON(rv))
	}
	writeJSON(w, http.StatusOK, envelope{
		Data: wrapElements(items),
		Metadata: reviewMetaJSON{
			TotalReviews:  out.Meta.TotalReviews,
			AverageRating: out.Meta.AverageRating,
			StarCounts:    out.Meta.StarCounts,
		},
		Paging: &out.Paging,
	})
}

func (h *Handlers) bookingEnquiry(w http.ResponseWriter, r *http.Request) {
	code, ok := hotelCodeParam(r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, "hotel code must be a number")
		return
	}
	enq, err := h.Q.BookingEnquiry(r.Context(), code)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "hotel not found")
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"name":                    enq.Name,
		"cancellationPolicy":      enq.CancellationPolicy,
		"checkInTime":             enq.CheckInTime,
		"checkOutTime":            enq.CheckOutTime,
		"currentNightRate":        enq.CurrentNightRate,
		"maxGuestsAllowed":        enq.MaxGuestsAllowed,
		"maxRoomsAllowedPerGuest": enq.MaxRoomsAllowedPerGuest,
	})
}

type addReviewRequest struct {
	HotelID int64   `json:"hotelId" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=1,lte=5"`
	Review  string  `json:"review" validate:"required"`
}

// addReview acknowledges but does not persist; review fixtures are immutable.
func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	var req addReviewRequest
	if msgs := decodeBody(r, &req); msgs != nil {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "Review added successfully"})
}

func (h *Handlers) availableCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Q.AvailableCities(r.Context())
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, "city lookup failed")
		return
	}
	writeData(w, http.StatusOK, wrapElements(cities))
}

func (h *Handlers) popularDestinations(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, wrapElements(app.PopularDestinations()))
}

func (h *Handlers) nearbyHotels(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = "pune"
	}
	hotels, err := h.Q.NearbyHotels(r.Context(), city)
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, "nearby lookup failed")
		return
	}
	items := make([]hotelJSON, 0, len(hotels))
	for _, hotel := range hotels {
		items = append(items, toHotelJSON(hotel))
	}
	writeData(w, http.StatusOK, wrapElements(items))
}

func (h *Handlers) verticalFilters(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, wrapElements(app.VerticalFilters()))
}

func (h *Handlers) countries(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, wrapElements(app.Countries()))
}

// ---- auth ----

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if msgs := decodeBody(r, &req); msgs != nil {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}
	token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		observability.ObserveSession("login_failed")
		writeErrors(w, http.StatusNotFound, "User not found or invalid credentials")
		return
	}
	observability.ObserveSession("login_ok")
	writeData(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(r.Context(), bearerToken(r))
	observability.ObserveSession("logout")
	writeData(w, http.StatusOK, map[string]string{"status": "User logged out successfully"})
}

func (h *Handlers) authUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.Auth.Status(r.Context(), bearerToken(r))
	if !ok {
		writeData(w, http.StatusOK, map[string]any{
			"isAuthenticated": false,
			"userDetails":     struct{}{},
		})
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"isAuthenticated": true,
		"userDetails":     toUserJSON(u),
	})
}

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" validate:"required"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if msgs := decodeBody(r, &req); msgs != nil {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}
	u, err := h.Auth.Register(r.Context(), app.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			observability.ObserveSession("register_conflict")
			writeErrors(w, http.StatusConflict, "User already exists with that email")
			return
		}
		writeErrors(w, http.StatusInternalServerError, "registration failed")
		return
	}
	observability.ObserveSession("register_ok")
	writeData(w, http.StatusOK, map[string]any{"user": toUserJSON(u)})
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	FullName  *string `json:"fullName"`
	Phone     *string `json:"phone"`
	Country   *string `json:"country"`
	Password  *string `json:"password"`
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if msgs := decodeBody(r, &req); msgs != nil {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}
	err := h.Auth.UpdateProfile(r.Context(), bearerToken(r), domain.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Country:   req.Country,
		Password:  req.Password,
	})
	if err != nil {
		writeErrors(w, http.StatusNotFound, "User not found")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "Profile updated successfully"})
}

func (h *Handlers) bookings(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, wrapElements(app.Bookings()))
}

func (h *Handlers) paymentMethods(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, wrapElements(app.PaymentMethods()))
}

// ---- payments ----

type paymentRequest struct {
	HotelName    string `json:"hotelName" validate:"required"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	TotalFare    string `json:"totalFare" validate:"required"`
}

func (h *Handlers) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if msgs := decodeBody(r, &req); msgs != nil {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}
	start := time.Now()
	conf, err := h.Pay.Confirm(r.Context(), app.ConfirmationRequest{
		HotelName:    req.HotelName,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		TotalFare:    req.TotalFare,
	})
	observability.ObservePayment(time.Since(start))
	if err != nil {
		writeErrors(w, http.StatusBadGateway, "payment failed")
		return
	}
	writeData(w, http.StatusOK, conf)
}
