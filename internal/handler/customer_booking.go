package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentora/booking-api/internal/availability"
	"github.com/rentora/booking-api/internal/model"
	"github.com/rentora/booking-api/internal/pricing"
	"github.com/rentora/booking-api/internal/queue"
	"github.com/rentora/booking-api/internal/repository"
	queue_publisher "github.com/rentora/booking-api/internal/service"
)

// CustomerHandler groups repositories for customers booking stays and
// reviewing completed ones.  All methods assume JWT authentication and
// CUSTOMER role validation have already been performed by middleware.
// The booking insert runs inside a repository transaction so the
// availability verdict and the new row commit atomically.
type CustomerHandler struct {
	PropertyRepo *repository.PropertyRepo
	BookingRepo  *repository.BookingRepo
	ReviewRepo   *repository.ReviewRepo
}

// NewCustomerHandler constructs a new CustomerHandler and panics if any
// dependency is nil.
func NewCustomerHandler(propertyRepo *repository.PropertyRepo, bookingRepo *repository.BookingRepo, reviewRepo *repository.ReviewRepo) *CustomerHandler {
	if propertyRepo == nil || bookingRepo == nil || reviewRepo == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		PropertyRepo: propertyRepo,
		BookingRepo:  bookingRepo,
		ReviewRepo:   reviewRepo,
	}
}

type bookingReq struct {
	CheckIn  string `json:"check_in"`  // YYYY-MM-DD
	CheckOut string `json:"check_out"` // YYYY-MM-DD
	Guests   int    `json:"guests"`
}

// validationStatus maps each named validation error to the HTTP status
// the UI expects, keeping the specific reason in the response body.
func validationStatus(err error) int {
	switch {
	case errors.Is(err, availability.ErrNotAvailable):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// CreateBooking handles POST /v1/properties/:id/bookings.  The request
// runs the full validation pipeline (date order, past check-in, overlap
// against confirmed bookings, duration cap, guest count) and each failed
// check returns its own named reason.  On success the booking is priced
// from the property's display rate and inserted with the repository's
// transactional availability re-check, then a booking.confirmed event is
// published for downstream consumers.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	customerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	if req.Guests <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests must be positive"})
	}

	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !p.Bookable() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	spans, err := h.BookingRepo.ConfirmedSpans(ctx, propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	nights, err := availability.Validate(availability.Request{
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      req.Guests,
		MaxGuests:   p.MaxGuests,
		MaxStayDays: p.MaxStayDays,
		Existing:    spans,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		return c.JSON(validationStatus(err), echo.Map{"error": err.Error()})
	}

	breakdown, err := pricing.BookingTotal(p.DisplayRate(), nights)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	b := model.Booking{
		PropertyID:    propertyID,
		CustomerID:    customerID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		Subtotal:      breakdown.Subtotal,
		ServiceFee:    breakdown.ServiceFee,
		Taxes:         breakdown.Taxes,
		TotalAmount:   breakdown.Total,
		PaymentStatus: model.PaymentPaid, // payment capture is out of scope
	}
	if err := h.BookingRepo.CreateIfAvailable(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return c.JSON(http.StatusConflict, echo.Map{"error": availability.ErrNotAvailable.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	// Event delivery is best effort: a broker outage must not fail the booking.
	_ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:     b.ID,
		PropertyID:    p.ID,
		PropertyTitle: p.Title,
		OwnerID:       p.OwnerID,
		CustomerID:    customerID,
		CheckIn:       checkIn.Format(dateLayout),
		CheckOut:      checkOut.Format(dateLayout),
		Nights:        nights,
		Guests:        req.Guests,
		TotalAmount:   b.TotalAmount,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"booking":   b,
		"breakdown": breakdown,
	})
}

// ListBookings handles GET /v1/bookings and returns the customer's own
// bookings with property titles.  Finished stays are flipped to COMPLETED
// first so the response reflects reality without a background job.
func (h *CustomerHandler) ListBookings(c echo.Context) error {
	customerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	if err := h.BookingRepo.CompleteFinished(ctx, customerID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.BookingRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateReview handles POST /v1/bookings/:id/reviews.  Only the booking's
// customer may review, only after the stay completed, and only once.
func (h *CustomerHandler) CreateReview(c echo.Context) error {
	customerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Rating < 1 || body.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	if err := h.BookingRepo.CompleteFinished(ctx, customerID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	b, err := h.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if b.CustomerID != customerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}
	if b.Status != model.BookingCompleted {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only completed stays can be reviewed"})
	}

	rv := model.Review{
		PropertyID: b.PropertyID,
		BookingID:  b.ID,
		CustomerID: customerID,
		Rating:     body.Rating,
		Comment:    strings.TrimSpace(body.Comment),
	}
	if err := h.ReviewRepo.Create(ctx, &rv); err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already reviewed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, rv)
}
