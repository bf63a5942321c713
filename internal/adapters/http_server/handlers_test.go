package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpserver "github.com/lvapl/StayFinder/internal/adapters/http_server"
	"github.com/lvapl/StayFinder/internal/app"
	"github.com/lvapl/StayFinder/internal/domain"
	"github.com/lvapl/StayFinder/internal/storage/memory"
)

// nopCache keeps handler tests deterministic: every request hits the repo.
type nopCache struct{}

func (nopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (nopCache) Set(context.Context, string, any, int) error    { return nil }
func (nopCache) Del(context.Context, string) error              { return nil }

type respEnvelope struct {
	Errors   []string        `json:"errors"`
	Data     json.RawMessage `json:"data"`
	Metadata json.RawMessage `json:"metadata"`
	Paging   *domain.Paging  `json:"paging"`
}

func testHotels() []domain.Hotel {
	var out []domain.Hotel
	for i := int64(1); i <= 13; i++ {
		out = append(out, domain.Hotel{
			Code: 100 + i, Title: fmt.Sprintf("Hotel %d", i), City: "pune",
			Rating: 4, Price: float64(1000 * i), PriceDisplay: fmt.Sprintf("%d,000", i),
		})
	}
	out[0].Reviews = []domain.Review{
		{ReviewerName: "A", Rating: 5}, {ReviewerName: "B", Rating: 5},
		{ReviewerName: "C", Rating: 4}, {ReviewerName: "D", Rating: 3},
		{ReviewerName: "E", Rating: 5},
	}
	out = append(out, domain.Hotel{
		Code: 201, Title: "Mumbai One", City: "mumbai", Rating: 3, Price: 500, PriceDisplay: "500",
	})
	return out
}

func testUsers() []domain.UserAccount {
	return []domain.UserAccount{
		{ID: 1, Email: "user1@example.com", Password: "password1", FirstName: "John", LastName: "Doe", FullName: "John Doe", Country: "USA", IsEmailVerified: true},
	}
}

func newTestServer(t *testing.T, payHook app.FailureHook) *httptest.Server {
	t.Helper()
	repo := memory.NewWith(testHotels(), testUsers())
	q := app.NewQueryService(repo, nopCache{}, time.Minute)
	auth := app.NewAuthService(repo, memory.NewSessions())
	pay := app.NewPaymentService(time.Millisecond, 4, payHook)

	srv := httpserver.New(100000)
	srv.MountHandlers(&httpserver.Handlers{Q: q, Auth: auth, Pay: pay})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, respEnvelope) {
	t.Helper()
	res, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	var e respEnvelope
	if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return res, e
}

func send(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, respEnvelope) {
	t.Helper()
	b, _ := json.Marshal(body)
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	var e respEnvelope
	if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return res, e
}

func hotelsQuery(filters, advanced, page string) string {
	v := url.Values{}
	if filters != "" {
		v.Set("filters", filters)
	}
	if advanced != "" {
		v.Set("advancedFilters", advanced)
	}
	if page != "" {
		v.Set("currentPage", page)
	}
	return "/api/hotels?" + v.Encode()
}

func TestListHotels_Endpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	res, e := get(t, ts, hotelsQuery(`{"city":"pune","star_ratings":[],"priceFilter":null}`, "", "1"))
	if res.StatusCode != http.StatusOK || len(e.Errors) != 0 {
		t.Fatalf("status %d errors %v", res.StatusCode, e.Errors)
	}
	var data struct {
		Elements []struct {
			HotelCode int64  `json:"hotelCode"`
			Price     string `json:"price"`
			Ratings   string `json:"ratings"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(data.Elements) != 6 {
		t.Fatalf("page size = %d", len(data.Elements))
	}
	var meta struct {
		TotalResults int `json:"totalResults"`
	}
	if err := json.Unmarshal(e.Metadata, &meta); err != nil || meta.TotalResults != 13 {
		t.Fatalf("metadata: %s err=%v", e.Metadata, err)
	}
	if e.Paging == nil || e.Paging.TotalPages != 3 || e.Paging.PageSize != 6 {
		t.Fatalf("paging: %+v", e.Paging)
	}
}

func TestListHotels_ClampedPage(t *testing.T) {
	ts := newTestServer(t, nil)
	_, e := get(t, ts, hotelsQuery(`{"city":"pune","star_ratings":[],"priceFilter":null}`, "", "5"))
	if e.Paging == nil || e.Paging.CurrentPage != 3 {
		t.Fatalf("paging: %+v", e.Paging)
	}
}

func TestListHotels_SortByPrice(t *testing.T) {
	ts := newTestServer(t, nil)
	_, e := get(t, ts, hotelsQuery(`{"city":"","star_ratings":[],"priceFilter":null}`, `[{"sortBy":"priceLowToHigh"}]`, "1"))
	var data struct {
		Elements []struct {
			HotelCode int64 `json:"hotelCode"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if data.Elements[0].HotelCode != 201 { // the 500-priced mumbai hotel
		t.Fatalf("cheapest first expected, got %+v", data.Elements[0])
	}
}

func TestListHotels_MalformedFilters(t *testing.T) {
	ts := newTestServer(t, nil)
	res, e := get(t, ts, hotelsQuery(`{not json`, "", "1"))
	if res.StatusCode != http.StatusBadRequest || len(e.Errors) == 0 {
		t.Fatalf("status %d errors %v", res.StatusCode, e.Errors)
	}
}

func TestGetHotel_Endpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	res, e := get(t, ts, "/api/hotel/101")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var data struct {
		HotelCode   int64    `json:"hotelCode"`
		Description []string `json:"description"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if data.HotelCode != 101 || len(data.Description) == 0 {
		t.Fatalf("detail: %+v", data)
	}

	res, e = get(t, ts, "/api/hotel/99999")
	if res.StatusCode != http.StatusNotFound || len(e.Errors) == 0 {
		t.Fatalf("missing hotel: status %d errors %v", res.StatusCode, e.Errors)
	}

	res, _ = get(t, ts, "/api/hotel/abc")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad code: status %d", res.StatusCode)
	}
}

func TestReviews_Endpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	res, e := get(t, ts, "/api/hotel/101/reviews?currentPage=1")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var meta struct {
		TotalReviews  int         `json:"totalReviews"`
		AverageRating float64     `json:"averageRating"`
		StarCounts    map[int]int `json:"starCounts"`
	}
	if err := json.Unmarshal(e.Metadata, &meta); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.TotalReviews != 5 || meta.AverageRating != 4.4 {
		t.Fatalf("metadata: %+v", meta)
	}
	if meta.StarCounts[5] != 3 || meta.StarCounts[4] != 1 || meta.StarCounts[3] != 1 {
		t.Fatalf("starCounts: %v", meta.StarCounts)
	}
	if e.Paging == nil || e.Paging.PageSize != 5 {
		t.Fatalf("paging: %+v", e.Paging)
	}
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t, nil)

	// wrong password → 404, vague message
	res, e := send(t, ts, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "user1@example.com", "password": "wrong",
	})
	if res.StatusCode != http.StatusNotFound || len(e.Errors) == 0 {
		t.Fatalf("bad login: status %d errors %v", res.StatusCode, e.Errors)
	}

	// success → token
	res, e = send(t, ts, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "user1@example.com", "password": "password1",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", res.StatusCode)
	}
	var loginData struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(e.Data, &loginData); err != nil || loginData.Token == "" {
		t.Fatalf("token: %s err=%v", e.Data, err)
	}

	// auth-user reflects the session, without the password
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/users/auth-user", nil)
	req.Header.Set("Authorization", "Bearer "+loginData.Token)
	r2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("auth-user: %v", err)
	}
	defer r2.Body.Close()
	var raw bytes.Buffer
	var status struct {
		Errors []string `json:"errors"`
		Data   struct {
			IsAuthenticated bool `json:"isAuthenticated"`
			UserDetails     struct {
				Email string `json:"email"`
			} `json:"userDetails"`
		} `json:"data"`
	}
	if err := json.NewDecoder(io.TeeReader(r2.Body, &raw)).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !status.Data.IsAuthenticated || status.Data.UserDetails.Email != "user1@example.com" {
		t.Fatalf("auth status: %+v", status.Data)
	}
	if strings.Contains(raw.String(), "password") {
		t.Fatalf("password leaked: %s", raw.String())
	}

	// logout then status flips to anonymous
	if res, _ := send(t, ts, http.MethodPost, "/api/users/logout", loginData.Token, nil); res.StatusCode != http.StatusOK {
		t.Fatalf("logout status %d", res.StatusCode)
	}
	_, e = send(t, ts, http.MethodGet, "/api/users/auth-user", loginData.Token, nil)
	var after struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}
	_ = json.Unmarshal(e.Data, &after)
	if after.IsAuthenticated {
		t.Fatal("still authenticated after logout")
	}
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t, nil)

	// conflict
	res, e := send(t, ts, http.MethodPut, "/api/users/register", "", map[string]string{
		"firstName": "X", "email": "user1@example.com", "password": "p",
	})
	if res.StatusCode != http.StatusConflict || len(e.Errors) == 0 {
		t.Fatalf("conflict: status %d errors %v", res.StatusCode, e.Errors)
	}

	// invalid email fails validation
	res, _ = send(t, ts, http.MethodPut, "/api/users/register", "", map[string]string{
		"firstName": "X", "email": "not-an-email", "password": "p",
	})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("validation: status %d", res.StatusCode)
	}

	// success
	res, e = send(t, ts, http.MethodPut, "/api/users/register", "", map[string]string{
		"firstName": "Ana", "lastName": "Iv", "email": "ana@example.com", "password": "pw",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("register: status %d", res.StatusCode)
	}
	var data struct {
		User struct {
			Email    string `json:"email"`
			FullName string `json:"fullName"`
		} `json:"user"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil || data.User.Email != "ana@example.com" || data.User.FullName != "Ana Iv" {
		t.Fatalf("register data: %s err=%v", e.Data, err)
	}
}

func TestUpdateProfile_NoSession(t *testing.T) {
	ts := newTestServer(t, nil)
	res, e := send(t, ts, http.MethodPatch, "/api/users/update-profile", "", map[string]string{"phone": "1"})
	if res.StatusCode != http.StatusNotFound || len(e.Errors) == 0 {
		t.Fatalf("status %d errors %v", res.StatusCode, e.Errors)
	}
}

func TestAddReview_Validation(t *testing.T) {
	ts := newTestServer(t, nil)

	res, _ := send(t, ts, http.MethodPut, "/api/hotel/add-review", "", map[string]any{
		"hotelId": 101, "rating": 9, "review": "way too good",
	})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("rating 9 accepted: status %d", res.StatusCode)
	}

	res, e := send(t, ts, http.MethodPut, "/api/hotel/add-review", "", map[string]any{
		"hotelId": 101, "rating": 4, "review": "nice stay",
	})
	if res.StatusCode != http.StatusOK || len(e.Errors) != 0 {
		t.Fatalf("status %d errors %v", res.StatusCode, e.Errors)
	}
}

func TestFixtureEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, path := range []string{
		"/api/availableCities",
		"/api/popularDestinations",
		"/api/nearbyHotels",
		"/api/hotels/verticalFilters",
		"/api/misc/countries",
		"/api/users/bookings",
		"/api/users/payment-methods",
	} {
		res, e := get(t, ts, path)
		if res.StatusCode != http.StatusOK || len(e.Errors) != 0 {
			t.Fatalf("%s: status %d errors %v", path, res.StatusCode, e.Errors)
		}
		if !bytes.Contains(e.Data, []byte("elements")) {
			t.Fatalf("%s: data has no elements: %s", path, e.Data)
		}
	}
}

func TestBookingEnquiry_Endpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	res, e := get(t, ts, "/api/hotel/101/booking/enquiry")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var data struct {
		Name             string `json:"name"`
		CurrentNightRate string `json:"currentNightRate"`
		MaxGuestsAllowed int    `json:"maxGuestsAllowed"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if data.Name != "Hotel 1" || data.CurrentNightRate != "1,000" || data.MaxGuestsAllowed != 5 {
		t.Fatalf("enquiry: %+v", data)
	}
}

func TestPaymentConfirmation_Endpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	res, e := send(t, ts, http.MethodPost, "/api/payments/confirmation", "", map[string]string{
		"hotelName": "Hotel 1", "checkInDate": "2024-05-01", "checkOutDate": "2024-05-03", "totalFare": "2,000",
	})
	if res.StatusCode != http.StatusOK || len(e.Errors) != 0 {
		t.Fatalf("status %d errors %v", res.StatusCode, e.Errors)
	}
	var data struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil || data.Status != "Payment successful" {
		t.Fatalf("data: %s err=%v", e.Data, err)
	}
}

func TestPaymentConfirmation_InjectedFailure(t *testing.T) {
	ts := newTestServer(t, func(app.ConfirmationRequest) error { return errors.New("declined") })
	res, e := send(t, ts, http.MethodPost, "/api/payments/confirmation", "", map[string]string{
		"hotelName": "Hotel 1", "checkInDate": "a", "checkOutDate": "b", "totalFare": "1",
	})
	if res.StatusCode != http.StatusBadGateway || len(e.Errors) == 0 {
		t.Fatalf("status %d errors %v", res.StatusCode, e.Errors)
	}
}

func TestRateLimit(t *testing.T) {
	repo := memory.NewWith(testHotels(), testUsers())
	q := app.NewQueryService(repo, nopCache{}, time.Minute)
	auth := app.NewAuthService(repo, memory.NewSessions())
	pay := app.NewPaymentService(0, 1, nil)

	srv := httpserver.New(1) // one request per second, burst 1
	srv.MountHandlers(&httpserver.Handlers{Q: q, Auth: auth, Pay: pay})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	first, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if first.StatusCode != http.StatusOK {
		t.Fatalf("first request: status %d", first.StatusCode)
	}
	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", res.StatusCode)
	}
}
