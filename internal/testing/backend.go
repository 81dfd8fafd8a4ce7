package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// FakeSecret signs the access tokens issued by [FakeBackend].
var FakeSecret = []byte("fake-backend-secret")

// FakeBackend is an httptest server that speaks the rental REST API closely enough for client tests.
//
// Every route lives under /api. Tokens are HS256 JWTs signed with [FakeSecret].
type FakeBackend struct {
	mu       sync.Mutex
	server   *httptest.Server
	router   chi.Router
	cars     []models.Car
	users    map[string]fakeUser
	tokens   map[string]string
	wishlist map[string][]models.WishlistEntry
	reserved map[int64][]models.BookingInterval
	bookings []models.Booking
	reviews  []models.Review
	failures map[string]int
	requests []string
	nextID   int64
	TokenTTL time.Duration

	// PaginateWishlist wraps the wishlist listing in a {"results": [...]} page.
	PaginateWishlist bool
}

type fakeUser struct {
	password string
	profile  models.Profile
}

// NewFakeBackend starts a fake backend serving cars and registers its shutdown with t.
func NewFakeBackend(t *testing.T, cars ...models.Car) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		router:   chi.NewRouter(),
		cars:     cars,
		users:    make(map[string]fakeUser),
		tokens:   make(map[string]string),
		wishlist: make(map[string][]models.WishlistEntry),
		reserved: make(map[int64][]models.BookingInterval),
		failures: make(map[string]int),
		nextID:   1,
		TokenTTL: time.Hour,
	}
	f.setupRoutes()
	f.server = httptest.NewServer(f.router)
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the server root, without the /api prefix.
func (f *FakeBackend) URL() string { return f.server.URL }

// Endpoint returns the API base the clients talk to.
func (f *FakeBackend) Endpoint() string { return f.server.URL + "/api" }

// AddUser registers an account that can log in.
func (f *FakeBackend) AddUser(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addUserLocked(username, password, models.RegisterRequest{Username: username})
}

// Book reserves a date range so availability checks for car report a conflict.
func (f *FakeBackend) Book(carID int64, pickup, ret string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserved[carID] = append(f.reserved[carID], models.BookingInterval{PickupDate: pickup, ReturnDate: ret})
}

// Bookings returns every booking username created, in creation order.
func (f *FakeBackend) Bookings(username string) []models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.Username == username {
			out = append(out, b)
		}
	}
	return out
}

// SetBookingStatus forces the status of booking id, e.g. to simulate a confirmed payment.
func (f *FakeBackend) SetBookingStatus(id int64, status models.BookingStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
		}
	}
}

// AddReview records a review of car by username.
func (f *FakeBackend) AddReview(carID int64, username string, rating int, comment string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	review := models.Review{
		ID:        f.nextID,
		User:      f.users[username].profile.ID,
		Username:  username,
		Car:       carID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	review.UpdatedAt = review.CreatedAt
	for _, c := range f.cars {
		if c.ID == carID {
			review.CarName = c.Name
		}
	}
	f.nextID++
	f.reviews = append(f.reviews, review)
}

// Profile returns the stored profile of username.
func (f *FakeBackend) Profile(username string) models.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[username].profile
}

// Fail makes every request matching method and path answer with status until cleared with status 0.
func (f *FakeBackend) Fail(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := method + " " + path
	if status == 0 {
		delete(f.failures, key)
		return
	}
	f.failures[key] = status
}

// Requests returns every request seen so far as "METHOD /path".
func (f *FakeBackend) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// Count returns how many requests matched method and path.
func (f *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r == method+" "+path {
			n++
		}
	}
	return n
}

// WishlistCarIDs returns the sorted car ids in username's server-side wishlist.
func (f *FakeBackend) WishlistCarIDs(username string) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := []int64{}
	for _, e := range f.wishlist[username] {
		ids = append(ids, e.Car.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IssueToken returns a token for username that expires after ttl. Negative ttls produce expired tokens.
func (f *FakeBackend) IssueToken(username string, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		ID:        strconv.FormatInt(time.Now().UnixNano(), 36),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(FakeSecret)
	if err != nil {
		panic(err)
	}

	f.mu.Lock()
	f.tokens[signed] = username
	f.mu.Unlock()
	return signed
}

func (f *FakeBackend) setupRoutes() {
	f.router.Use(middleware.Recoverer)
	f.router.Use(f.record)

	f.router.Route("/api", func(r chi.Router) {
		r.Post("/token/", f.handleToken)
		r.Post("/users/register/", f.handleRegister)
		r.Get("/users/profile/", f.authed(f.handleProfile))
		r.Patch("/users/profile/update/", f.authed(f.handleUpdateProfile))
		r.Post("/users/profile/change-password/", f.authed(f.handleChangePassword))

		r.Get("/cars/", f.handleCars)
		r.Get("/cars/featured/", f.handleFeatured)
		r.Get("/cars/{id}/", f.handleCar)
		r.Post("/cars/{id}/check_availability/", f.handleAvailability)

		r.Get("/brands/", f.handleBrands)
		r.Get("/brands/by_brand/", f.handleByBrand)

		r.Get("/wishlist/", f.authed(f.handleWishlist))
		r.Post("/wishlist/", f.authed(f.handleAddWishlist))
		r.Delete("/wishlist/remove_by_car/", f.authed(f.handleRemoveByCar))

		r.Get("/bookings/", f.authed(f.handleBookings))
		r.Post("/bookings/", f.authed(f.handleCreateBooking))
		r.Get("/bookings/{id}/", f.authed(f.handleBooking))
		r.Patch("/bookings/{id}/", f.authed(f.handleUpdateBooking))

		r.Get("/reviews/", f.handleReviews)
	})
}

func (f *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		f.mu.Lock()
		f.requests = append(f.requests, key)
		status, failing := f.failures[key]
		f.mu.Unlock()

		if failing {
			respondJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userHandler func(w http.ResponseWriter, r *http.Request, username string)

func (f *FakeBackend) authed(h userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		f.mu.Lock()
		username, ok := f.tokens[raw]
		f.mu.Unlock()

		if !ok {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}

		if _, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return FakeSecret, nil }); err != nil {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		h(w, r, username)
	}
}

func (f *FakeBackend) handleToken(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	f.mu.Lock()
	user, ok := f.users[creds.Username]
	ttl := f.TokenTTL
	f.mu.Unlock()

	if !ok || user.password != creds.Password {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access":  f.IssueToken(creds.Username, ttl),
		"refresh": f.IssueToken(creds.Username, 24*ttl),
	})
}

func (f *FakeBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	errs := map[string][]string{}
	if req.Username == "" {
		errs["username"] = []string{"This field is required."}
	}
	if len(req.Password) < 8 {
		errs["password"] = []string{"This password is too short. It must contain at least 8 characters."}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[req.Username]; exists {
		errs["username"] = []string{"A user with that username already exists."}
	}
	if len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, errs)
		return
	}

	user := f.addUserLocked(req.Username, req.Password, req)
	respondJSON(w, http.StatusCreated, user.profile)
}

func (f *FakeBackend) handleProfile(w http.ResponseWriter, r *http.Request, username string) {
	f.mu.Lock()
	user := f.users[username]
	f.mu.Unlock()
	respondJSON(w, http.StatusOK, user.profile)
}

func (f *FakeBackend) handleCars(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	cars := append([]models.Car{}, f.cars...)
	f.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(cars),
		"next":     nil,
		"previous": nil,
		"results":  cars,
	})
}

func (f *FakeBackend) handleFeatured(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	featured := []models.Car{}
	for _, c := range f.cars {
		if c.Featured {
			featured = append(featured, c)
		}
	}
	respondJSON(w, http.StatusOK, featured)
}

func (f *FakeBackend) handleCar(w http.ResponseWriter, r *http.Request) {
	car, ok := f.lookupCar(chi.URLParam(r, "id"))
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (f *FakeBackend) handleAvailability(w http.ResponseWriter, r *http.Request) {
	car, ok := f.lookupCar(chi.URLParam(r, "id"))
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	var req models.BookingInterval
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PickupDate == "" || req.ReturnDate == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "pickup_date and return_date are required"})
		return
	}
	if req.ReturnDate <= req.PickupDate {
		respondJSON(w, http.StatusBadRequest, map[string]any{"available": false, "error": "Return date must be after pickup date"})
		return
	}

	f.mu.Lock()
	conflict, taken := f.conflictLocked(car.ID, req)
	f.mu.Unlock()

	if taken {
		respondJSON(w, http.StatusOK, models.Availability{
			Available:   false,
			Error:       "Car is not available for these dates",
			Conflicting: &conflict,
		})
		return
	}

	respondJSON(w, http.StatusOK, models.Availability{Available: true, Message: "Car is available for these dates"})
}

func (f *FakeBackend) handleBrands(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := map[int64]bool{}
	brands := []models.Brand{}
	for _, c := range f.cars {
		if c.Brand != nil && !seen[c.Brand.ID] {
			seen[c.Brand.ID] = true
			brands = append(brands, *c.Brand)
		}
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Name < brands[j].Name })
	respondJSON(w, http.StatusOK, brands)
}

func (f *FakeBackend) handleByBrand(w http.ResponseWriter, r *http.Request) {
	brandID, err := strconv.ParseInt(r.URL.Query().Get("brand_id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "brand_id is required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	cars := []models.Car{}
	for _, c := range f.cars {
		if c.Brand != nil && c.Brand.ID == brandID {
			cars = append(cars, c)
		}
	}
	respondJSON(w, http.StatusOK, cars)
}

func (f *FakeBackend) handleWishlist(w http.ResponseWriter, r *http.Request, username string) {
	f.mu.Lock()
	entries := append([]models.WishlistEntry{}, f.wishlist[username]...)
	paginate := f.PaginateWishlist
	f.mu.Unlock()

	if paginate {
		respondJSON(w, http.StatusOK, map[string]any{"count": len(entries), "results": entries})
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (f *FakeBackend) handleAddWishlist(w http.ResponseWriter, r *http.Request, username string) {
	var req struct {
		CarID int64 `json:"car_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "car_id is required"})
		return
	}

	car, ok := f.lookupCar(strconv.FormatInt(req.CarID, 10))
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "Car not found"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.wishlist[username] {
		if e.Car.ID == req.CarID {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Car already in wishlist"})
			return
		}
	}

	entry := models.WishlistEntry{
		ID:        f.nextID,
		User:      f.users[username].profile.ID,
		Car:       car,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	f.nextID++
	f.wishlist[username] = append(f.wishlist[username], entry)
	respondJSON(w, http.StatusCreated, entry)
}

func (f *FakeBackend) handleRemoveByCar(w http.ResponseWriter, r *http.Request, username string) {
	carID, err := strconv.ParseInt(r.URL.Query().Get("car_id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "car_id is required"})
		return
	}

	if !f.removeWhere(username, func(e models.WishlistEntry) bool { return e.Car.ID == carID }) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "Car not in wishlist"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}

func (f *FakeBackend) handleUpdateProfile(w http.ResponseWriter, r *http.Request, username string) {
	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}
	if update.Email != "" && !strings.Contains(update.Email, "@") {
		respondJSON(w, http.StatusBadRequest, map[string][]string{"email": {"Enter a valid email address."}})
		return
	}

	f.mu.Lock()
	user := f.users[username]
	if update.Email != "" {
		user.profile.Email = update.Email
	}
	if update.FirstName != "" {
		user.profile.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.profile.LastName = update.LastName
	}
	f.users[username] = user
	f.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{"message": "Profile updated successfully", "user": user.profile})
}

func (f *FakeBackend) handleChangePassword(w http.ResponseWriter, r *http.Request, username string) {
	var req models.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Both old and new passwords are required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	user := f.users[username]
	if user.password != req.OldPassword {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Old password is incorrect"})
		return
	}
	if len(req.NewPassword) < 8 {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "New password must be at least 8 characters"})
		return
	}

	user.password = req.NewPassword
	f.users[username] = user
	respondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (f *FakeBackend) handleBookings(w http.ResponseWriter, r *http.Request, username string) {
	f.mu.Lock()
	mine := []models.Booking{}
	for i := len(f.bookings) - 1; i >= 0; i-- {
		if f.bookings[i].Username == username {
			mine = append(mine, f.bookings[i])
		}
	}
	f.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{"count": len(mine), "next": nil, "previous": nil, "results": mine})
}

func (f *FakeBackend) handleCreateBooking(w http.ResponseWriter, r *http.Request, username string) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	car, ok := f.lookupCar(strconv.FormatInt(req.CarID, 10))
	if !ok {
		respondJSON(w, http.StatusBadRequest, map[string][]string{"car_id": {"Car not found."}})
		return
	}
	if req.PickupDate == "" || req.ReturnDate <= req.PickupDate {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Return date must be after pickup date"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	interval := models.BookingInterval{PickupDate: req.PickupDate, ReturnDate: req.ReturnDate}
	if _, taken := f.conflictLocked(car.ID, interval); taken {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Car is not available for these dates"})
		return
	}

	now := time.Now().UTC().Truncate(time.Second)
	booking := models.Booking{
		ID:         f.nextID,
		User:       f.users[username].profile.ID,
		Username:   username,
		Car:        car,
		PickupDate: req.PickupDate,
		ReturnDate: req.ReturnDate,
		TotalDays:  req.TotalDays,
		TotalCost:  req.TotalCost,
		Status:     models.BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.nextID++
	f.bookings = append(f.bookings, booking)
	respondJSON(w, http.StatusCreated, booking)
}

func (f *FakeBackend) handleBooking(w http.ResponseWriter, r *http.Request, username string) {
	f.mu.Lock()
	i := f.bookingIndexLocked(chi.URLParam(r, "id"), username)
	var booking models.Booking
	if i >= 0 {
		booking = f.bookings[i]
	}
	f.mu.Unlock()

	if i < 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (f *FakeBackend) handleUpdateBooking(w http.ResponseWriter, r *http.Request, username string) {
	var req struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.bookingIndexLocked(chi.URLParam(r, "id"), username)
	if i < 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	switch req.Status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
	default:
		respondJSON(w, http.StatusBadRequest, map[string][]string{"status": {fmt.Sprintf("\"%s\" is not a valid choice.", req.Status)}})
		return
	}

	f.bookings[i].Status = req.Status
	f.bookings[i].UpdatedAt = time.Now().UTC().Truncate(time.Second)
	respondJSON(w, http.StatusOK, f.bookings[i])
}

func (f *FakeBackend) handleReviews(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("car_id")

	f.mu.Lock()
	reviews := []models.Review{}
	for i := len(f.reviews) - 1; i >= 0; i-- {
		if rawID == "" || strconv.FormatInt(f.reviews[i].Car, 10) == rawID {
			reviews = append(reviews, f.reviews[i])
		}
	}
	f.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{"count": len(reviews), "next": nil, "previous": nil, "results": reviews})
}

// conflictLocked finds a reservation or live booking of car that overlaps want.
func (f *FakeBackend) conflictLocked(carID int64, want models.BookingInterval) (models.BookingInterval, bool) {
	overlaps := func(b models.BookingInterval) bool {
		return want.PickupDate < b.ReturnDate && b.PickupDate < want.ReturnDate
	}

	for _, b := range f.reserved[carID] {
		if overlaps(b) {
			return b, true
		}
	}
	for _, b := range f.bookings {
		interval := models.BookingInterval{PickupDate: b.PickupDate, ReturnDate: b.ReturnDate}
		if b.Car.ID == carID && b.Status != models.BookingCancelled && overlaps(interval) {
			return interval, true
		}
	}
	return models.BookingInterval{}, false
}

func (f *FakeBackend) bookingIndexLocked(rawID, username string) int {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return -1
	}
	for i, b := range f.bookings {
		if b.ID == id && b.Username == username {
			return i
		}
	}
	return -1
}

func (f *FakeBackend) removeWhere(username string, match func(models.WishlistEntry) bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.wishlist[username]
	for i, e := range entries {
		if match(e) {
			f.wishlist[username] = append(entries[:i:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

func (f *FakeBackend) lookupCar(rawID string) (models.Car, bool) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return models.Car{}, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.cars {
		if c.ID == id {
			return c, true
		}
	}
	return models.Car{}, false
}

func (f *FakeBackend) addUserLocked(username, password string, req models.RegisterRequest) fakeUser {
	user := fakeUser{
		password: password,
		profile: models.Profile{
			ID:         int64(len(f.users) + 1),
			Username:   username,
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			DateJoined: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	if user.profile.Email == "" {
		user.profile.Email = fmt.Sprintf("%s@example.com", username)
	}
	f.users[username] = user
	return user
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
