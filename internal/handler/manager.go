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

// ManagerHandler groups repositories for platform managers reviewing
// listing submissions and administering commission contracts.  All
// methods assume JWT authentication and MANAGER role validation have
// already been performed by middleware.
type ManagerHandler struct {
	PropertyRepo *repository.PropertyRepo
	ContractRepo *repository.ContractRepo
}

// NewManagerHandler constructs a new ManagerHandler and panics if any
// dependency is nil.
func NewManagerHandler(propertyRepo *repository.PropertyRepo, contractRepo *repository.ContractRepo) *ManagerHandler {
	if propertyRepo == nil || contractRepo == nil {
		panic("nil repository passed to NewManagerHandler")
	}
	return &ManagerHandler{PropertyRepo: propertyRepo, ContractRepo: contractRepo}
}

// ListProperties handles GET /v1/manager/properties?status=.  Without a
// status filter every listing is returned so managers can audit the full
// inventory.
func (h *ManagerHandler) ListProperties(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.PropertyPendingReview, model.PropertyPendingContract,
		model.PropertyApproved, model.PropertyRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
	}
	items, err := h.PropertyRepo.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ApproveProperty handles POST /v1/properties/:id/approve.  Approval
// moves the listing from PENDING_REVIEW to PENDING_CONTRACT and sends the
// owner a commission contract.  The contract is seeded with the platform
// default percentage unless the manager supplies one; the percentage
// stored on the contract is what gets applied when it is accepted.
func (h *ManagerHandler) ApproveProperty(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var body struct {
		CommissionPct *float64 `json:"commission_pct"`
	}
	_ = c.Bind(&body) // empty body is fine, default commission applies
	pct := pricing.DefaultCommissionPct
	if body.CommissionPct != nil {
		pct = *body.CommissionPct
	}
	if pct < 0 || pct > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "commission_pct must be between 0 and 100"})
	}

	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if p.Status != model.PropertyPendingReview {
		return c.JSON(http.StatusConflict, echo.Map{"error": "property is not pending review"})
	}

	if err := h.PropertyRepo.SetStatus(ctx, id, model.PropertyPendingContract, ""); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "approve failed"})
	}
	ct := model.Contract{PropertyID: id, OwnerID: p.OwnerID, CommissionPct: pct}
	if err := h.ContractRepo.Create(ctx, &ct); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send contract failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"property_id": id,
		"status":      model.PropertyPendingContract,
		"contract":    ct,
	})
}

// RejectProperty handles POST /v1/properties/:id/reject.  A reason is
// required so the owner sees why and can appeal.
func (h *ManagerHandler) RejectProperty(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.Reason) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason is required"})
	}
	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if p.Status == model.PropertyApproved {
		return c.JSON(http.StatusConflict, echo.Map{"error": "approved properties cannot be rejected"})
	}
	if err := h.PropertyRepo.SetStatus(ctx, id, model.PropertyRejected, strings.TrimSpace(body.Reason)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reject failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.PropertyRejected})
}

// AcceptContract handles POST /v1/contracts/:id/accept.  Accepting is the
// side effect that computes and freezes the property's final rate:
// round(base_rate * (1 + pct/100)).  The contract state change and the
// rate freeze run in one transaction; the owner must have agreed first.
func (h *ManagerHandler) AcceptContract(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	ctx := c.Request().Context()
	ct, err := h.ContractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContractNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ct.Status != model.ContractAgreed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "owner has not agreed to the contract"})
	}
	p, err := h.PropertyRepo.GetByID(ctx, ct.PropertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	finalRate, err := pricing.FinalRate(p.BaseRate, ct.CommissionPct)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	tx, err := h.ContractRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.ContractRepo.AcceptTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept contract failed"})
	}
	if err := h.PropertyRepo.FreezeFinalRateTx(ctx, tx, ct.PropertyID, finalRate, ct.CommissionPct); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "freeze rate failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"contract_id": id,
		"property_id": ct.PropertyID,
		"final_rate":  finalRate,
	})
}

// RejectContract handles POST /v1/contracts/:id/reject.  The property
// returns to the review queue so the rate negotiation can start over.
func (h *ManagerHandler) RejectContract(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	ctx := c.Request().Context()
	ct, err := h.ContractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContractNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ct.Status == model.ContractAccepted {
		return c.JSON(http.StatusConflict, echo.Map{"error": "accepted contracts cannot be rejected"})
	}
	if err := h.ContractRepo.SetStatus(ctx, id, model.ContractRejected); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reject contract failed"})
	}
	if err := h.PropertyRepo.SetStatus(ctx, ct.PropertyID, model.PropertyPendingReview, ""); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset property failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.ContractRejected})
}
