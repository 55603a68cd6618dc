// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines handlers for the public browsing API.
// These routes let unauthenticated users browse approved properties, see
// occupied dates, and price a prospective stay without signing in.
// Sensitive fields (owner IDs, base rates, commission percentages) are
// filtered from responses.

package handler

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentora/booking-api/internal/availability"
	"github.com/rentora/booking-api/internal/model"
	"github.com/rentora/booking-api/internal/pricing"
	"github.com/rentora/booking-api/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.  It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
	PropertyRepo *repository.PropertyRepo
	BookingRepo  *repository.BookingRepo
	ReviewRepo   *repository.ReviewRepo
}

// PublicProperty is a listing exposed via the public API.  NightlyRate is
// the guest-facing display rate: the frozen final rate when a contract
// has been accepted, otherwise the owner's proposed rate.
type PublicProperty struct {
	ID                 uint64  `json:"id"`
	Title              string  `json:"title"`
	City               string  `json:"city"`
	Country            string  `json:"country"`
	MaxGuests          int     `json:"max_guests"`
	NightlyRate        float64 `json:"nightly_rate"`
	TermClassification string  `json:"term_classification"`
	MaxStayDisplay     string  `json:"max_stay,omitempty"`
	Rating             float64 `json:"rating,omitempty"`
	ReviewCount        int     `json:"review_count,omitempty"`
}

func publicProperty(p model.Property) PublicProperty {
	return PublicProperty{
		ID:                 p.ID,
		Title:              p.Title,
		City:               p.City,
		Country:            p.Country,
		MaxGuests:          p.MaxGuests,
		NightlyRate:        p.DisplayRate(),
		TermClassification: p.TermClassification,
		MaxStayDisplay:     p.MaxStayDisplay,
	}
}

// GetProperties handles GET /v1/properties and returns every bookable
// listing.  Response JSON contains an "items" array of PublicProperty.
func (h *PublicHandler) GetProperties(c echo.Context) error {
	items, err := h.PropertyRepo.ListBookable(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicProperty, 0, len(items))
	for _, p := range items {
		out = append(out, publicProperty(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetProperty handles GET /v1/properties/:id with the aggregate review
// rating attached.  Listings that are not yet bookable 404 so pending and
// rejected submissions stay invisible.
func (h *PublicHandler) GetProperty(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, id)
	if err != nil || !p.Bookable() {
		if err != nil && !errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	out := publicProperty(p)
	if avg, count, err := h.ReviewRepo.AverageRating(ctx, id); err == nil {
		out.Rating = avg
		out.ReviewCount = count
	}
	return c.JSON(http.StatusOK, out)
}

// GetUnavailableDates handles GET /v1/properties/:id/unavailable-dates.
// It expands the property's confirmed bookings into individual occupied
// days (checkout days excluded) for calendar widgets.  The list is sorted
// and duplicate-free regardless of how bookings overlap.
func (h *PublicHandler) GetUnavailableDates(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, id)
	if err != nil || !p.Bookable() {
		if err != nil && !errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	spans, err := h.BookingRepo.ConfirmedSpans(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	set := availability.BookedDates(spans)
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return c.JSON(http.StatusOK, echo.Map{"dates": dates})
}

// GetQuote handles GET /v1/properties/:id/quote?check_in=&check_out=&guests=.
// It runs the same validation pipeline a booking would and, when the stay
// is legal, returns the priced breakdown.  Each failed check reports its
// specific reason so the booking form can annotate the right field.
func (h *PublicHandler) GetQuote(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	checkIn, err := parseDate(c.QueryParam("check_in"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(c.QueryParam("check_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	guests := 1
	if g := c.QueryParam("guests"); g != "" {
		guests, err = strconv.Atoi(g)
		if err != nil || guests <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests must be a positive integer"})
		}
	}

	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, id)
	if err != nil || !p.Bookable() {
		if err != nil && !errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	spans, err := h.BookingRepo.ConfirmedSpans(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	nights, err := availability.Validate(availability.Request{
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      guests,
		MaxGuests:   p.MaxGuests,
		MaxStayDays: p.MaxStayDays,
		Existing:    spans,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"available": false, "error": err.Error()})
	}
	breakdown, err := pricing.BookingTotal(p.DisplayRate(), nights)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "pricing failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"available":    true,
		"nights":       nights,
		"nightly_rate": p.DisplayRate(),
		"breakdown":    breakdown,
	})
}

// PublicReview strips customer identifiers from reviews.
type PublicReview struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GetReviews handles GET /v1/properties/:id/reviews.
func (h *PublicHandler) GetReviews(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	items, err := h.ReviewRepo.ListByProperty(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicReview, 0, len(items))
	for _, rv := range items {
		out = append(out, PublicReview{Rating: rv.Rating, Comment: rv.Comment, CreatedAt: rv.CreatedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SearchProperties handles GET /v1/search/properties with title, city,
// country, term, guests and max_rate filters plus pagination.
func (h *PublicHandler) SearchProperties(c echo.Context) error {
	q := repository.SearchQuery{
		Title:   c.QueryParam("title"),
		City:    c.QueryParam("city"),
		Country: c.QueryParam("country"),
		Term:    c.QueryParam("term"),
	}
	if g := c.QueryParam("guests"); g != "" {
		if n, err := strconv.Atoi(g); err == nil {
			q.Guests = n
		}
	}
	if mr := c.QueryParam("max_rate"); mr != "" {
		if v, err := strconv.ParseFloat(mr, 64); err == nil {
			q.MaxRate = v
		}
	}
	if p := c.QueryParam("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			q.Page = n
		}
	}
	if ps := c.QueryParam("page_size"); ps != "" {
		if n, err := strconv.Atoi(ps); err == nil {
			q.PageSize = n
		}
	}
	items, total, err := h.PropertyRepo.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicProperty, 0, len(items))
	for _, p := range items {
		out = append(out, publicProperty(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "total": total})
}
