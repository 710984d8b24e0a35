// backend-go/internal/api/handlers/inventory_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type adjustmentRequest struct {
	ItemID   string `json:"item_id"`
	BatchID  string `json:"batch_id"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) GetBatchIn(c *gin.Context) {
	in, err := h.service.GetBatchIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch batch in record")
		return
	}

	c.JSON(http.StatusOK, in)
}

func (h *InventoryHandler) GetDisposalTotal(c *gin.Context) {
	total, err := h.service.GetDisposalTotal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch disposal total")
		return
	}

	c.JSON(http.StatusOK, gin.H{"disposal_total": total})
}

func (h *InventoryHandler) GetAdjustmentTotals(c *gin.Context) {
	totals, err := h.service.GetAdjustmentTotals(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch adjustment totals")
		return
	}

	c.JSON(http.StatusOK, totals)
}

func (h *InventoryHandler) GetSummary(c *gin.Context) {
	filter := domain.SummaryFilter{
		Category:        strings.TrimSpace(c.Query("category")),
		IncludeArchived: c.Query("include_archived") == "true",
	}

	summaries, err := h.service.GetSummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to fetch inventory summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": summaries})
}

func (h *InventoryHandler) PreviewAdjustment(c *gin.Context) {
	req, ok := h.bindAdjustment(c)
	if !ok {
		return
	}

	outcome, err := h.service.PreviewAdjustment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to preview adjustment")
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (h *InventoryHandler) ApplyAdjustment(c *gin.Context) {
	req, ok := h.bindAdjustment(c)
	if !ok {
		return
	}

	outcome, err := h.service.ApplyAdjustment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to apply adjustment")
		return
	}

	c.JSON(http.StatusCreated, outcome)
}

func (h *InventoryHandler) bindAdjustment(c *gin.Context) (domain.AdjustmentRequest, bool) {
	var body adjustmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return domain.AdjustmentRequest{}, false
	}

	if strings.TrimSpace(body.ItemID) == "" || strings.TrimSpace(body.BatchID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id and batch_id are required"})
		return domain.AdjustmentRequest{}, false
	}

	if body.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be greater than zero"})
		return domain.AdjustmentRequest{}, false
	}

	// Unrecognized types pass through so the calculator can reject them
	// with its own message.
	adjType, _ := domain.ParseAdjustmentType(body.Type)

	return domain.AdjustmentRequest{
		ItemID:   body.ItemID,
		BatchID:  body.BatchID,
		Type:     adjType,
		Quantity: body.Quantity,
		Reason:   body.Reason,
	}, true
}

func respondError(c *gin.Context, err error, fallback string) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	var rejected *domain.RejectedError
	if errors.As(err, &rejected) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejected.Error()})
		return
	}

	var dateErr *domain.InvalidDateError
	if errors.As(err, &dateErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": dateErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
}
