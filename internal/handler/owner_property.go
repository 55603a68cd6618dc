package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rentora/booking-api/internal/model"
	"github.com/rentora/booking-api/internal/pricing"
	"github.com/rentora/booking-api/internal/repository"
)

// OwnerHandler groups repositories for owners to manage their listings and
// respond to commission contracts.  All methods assume JWT authentication
// and OWNER role validation have already been performed by middleware.
type OwnerHandler struct {
	PropertyRepo *repository.PropertyRepo // listing persistence
	ContractRepo *repository.ContractRepo // contract persistence
	BookingRepo  *repository.BookingRepo  // bookings, for the owner's calendar view
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(propertyRepo *repository.PropertyRepo, contractRepo *repository.ContractRepo, bookingRepo *repository.BookingRepo) *OwnerHandler {
	if propertyRepo == nil || contractRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{
		PropertyRepo: propertyRepo,
		ContractRepo: contractRepo,
		BookingRepo:  bookingRepo,
	}
}

// propertyReq is the owner-submitted listing form.  The derived stay and
// classification fields are computed server-side; clients never send them.
type propertyReq struct {
	Title        string  `json:"title"`
	City         string  `json:"city"`
	Country      string  `json:"country"`
	MaxGuests    int     `json:"max_guests"`
	ProposedRate float64 `json:"proposed_rate"`
	RentalType   string  `json:"rental_type"` // optional: short-term | long-term
	MaxStayValue int     `json:"max_stay_value"`
	MaxStayUnit  string  `json:"max_stay_unit"` // days | months | years
}

// buildProperty validates the form and fills a model.Property including
// the derived max-stay and term-classification fields.  The proposed rate
// doubles as the base rate the commission will later be applied to.
func buildProperty(req propertyReq, ownerID uint64) (model.Property, string) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return model.Property{}, "title is required"
	}
	if req.MaxGuests <= 0 {
		return model.Property{}, "max_guests must be positive"
	}
	if req.ProposedRate <= 0 {
		return model.Property{}, "proposed_rate must be positive"
	}
	p := model.Property{
		OwnerID:       ownerID,
		Title:         req.Title,
		City:          strings.TrimSpace(req.City),
		Country:       strings.TrimSpace(req.Country),
		MaxGuests:     req.MaxGuests,
		ProposedRate:  req.ProposedRate,
		BaseRate:      req.ProposedRate,
		CommissionPct: pricing.DefaultCommissionPct,
		RentalType:    strings.TrimSpace(req.RentalType),
	}
	if req.MaxStayValue > 0 {
		days, err := pricing.MaxStayToDays(req.MaxStayValue, req.MaxStayUnit)
		if err != nil {
			return model.Property{}, err.Error()
		}
		p.MaxStayValue = req.MaxStayValue
		p.MaxStayUnit = strings.ToLower(strings.TrimSpace(req.MaxStayUnit))
		p.MaxStayDays = days
		p.MaxStayDisplay = pricing.MaxStayDisplay(req.MaxStayValue, req.MaxStayUnit)
	}
	p.TermClassification = pricing.Classify(p.RentalType, p.MaxStayDays, p.ProposedRate)
	return p, ""
}

// CreateProperty handles POST /v1/properties.  The new listing starts in
// PENDING_REVIEW and is invisible to customers until a manager approves
// it and its commission contract is accepted.
func (h *OwnerHandler) CreateProperty(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p, msg := buildProperty(req, ownerID)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.PropertyRepo.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create property failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProperty handles PUT /v1/properties/:id.  Editing is allowed only
// while the listing has not been approved; once a contract freezes the
// final rate the listing is immutable through this endpoint.
func (h *OwnerHandler) UpdateProperty(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p, msg := buildProperty(req, ownerID)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	p.ID = id
	err = h.PropertyRepo.Update(c.Request().Context(), &p, ownerID)
	switch {
	case errors.Is(err, repository.ErrPropertyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your property"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "approved properties cannot be edited"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update property failed"})
	}
	updated, err := h.PropertyRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// ListProperties handles GET /v1/owner/properties and returns every
// listing the owner has submitted, whatever its state.
func (h *OwnerHandler) ListProperties(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.PropertyRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListContracts handles GET /v1/owner/contracts.
func (h *OwnerHandler) ListContracts(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.ContractRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// RespondContract handles POST /v1/contracts/:id/respond.  The body's
// "response" is "agree" or "disagree".  Only contracts in SENT state and
// belonging to the caller can be responded to.
func (h *OwnerHandler) RespondContract(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	var body struct {
		Response string `json:"response"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var status string
	switch strings.ToLower(strings.TrimSpace(body.Response)) {
	case "agree":
		status = model.ContractAgreed
	case "disagree":
		status = model.ContractDisagreed
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "response must be agree or disagree"})
	}

	ctx := c.Request().Context()
	ct, err := h.ContractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContractNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ct.OwnerID != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your contract"})
	}
	if ct.Status != model.ContractSent {
		return c.JSON(http.StatusConflict, echo.Map{"error": "contract already responded to"})
	}
	if err := h.ContractRepo.SetStatus(ctx, id, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update contract failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

// AppealProperty handles POST /v1/properties/:id/appeal.  A rejected
// listing goes back into the review queue with its rejection reason
// cleared.
func (h *OwnerHandler) AppealProperty(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if p.OwnerID != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your property"})
	}
	if p.Status != model.PropertyRejected {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only rejected properties can be appealed"})
	}
	if err := h.PropertyRepo.SetStatus(ctx, id, model.PropertyPendingReview, ""); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "appeal failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.PropertyPendingReview})
}

// ListPropertyBookings handles GET /v1/owner/properties/:id/bookings so
// owners can see upcoming and past stays at their listing.
func (h *OwnerHandler) ListPropertyBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if p.OwnerID != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your property"})
	}
	items, err := h.BookingRepo.ListByProperty(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
