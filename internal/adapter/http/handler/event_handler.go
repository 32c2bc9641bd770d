package handler

import (
	"math"
	"strconv"
	"time"

	"recoverable-ledger/internal/adapter/http/dto"
	"recoverable-ledger/internal/adapter/http/middleware"
	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ports"
	"recoverable-ledger/pkg/apperror"
	"recoverable-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventHandler handles ledger event journal queries.
type EventHandler struct {
	ledgerSvc ports.LedgerService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(ledgerSvc ports.LedgerService) *EventHandler {
	return &EventHandler{ledgerSvc: ledgerSvc}
}

// ListEvents handles GET /api/v1/events: the authenticated operator's
// own event history (as sender or receiver).
func (h *EventHandler) ListEvents(c *gin.Context) {
	operatorID, ok := c.Get(middleware.CtxOperatorID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	h.listEvents(c, operatorID.(uuid.UUID))
}

// ListAccountEvents handles GET /api/v1/custody/accounts/:id/events.
// The authority reviews any account's history when building a case.
func (h *EventHandler) ListAccountEvents(c *gin.Context) {
	account, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrAccountNotFound())
		return
	}

	h.listEvents(c, account)
}

func (h *EventHandler) listEvents(c *gin.Context, account uuid.UUID) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.EventListParams{
		Account:  account,
		Page:     page,
		PageSize: pageSize,
	}

	if t := c.Query("type"); t != "" {
		eventType := domain.EventType(t)
		params.Type = &eventType
	}
	if f := c.Query("from"); f != "" {
		if v, err := strconv.ParseInt(f, 10, 64); err == nil {
			params.From = &v
		}
	}
	if t := c.Query("to"); t != "" {
		if v, err := strconv.ParseInt(t, 10, 64); err == nil {
			params.To = &v
		}
	}

	events, total, err := h.ledgerSvc.ListEvents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, toEventResponse(&events[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	response.OK(c, dto.EventListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// toEventResponse converts domain.LedgerEvent to a DTO.
func toEventResponse(e *domain.LedgerEvent) dto.EventResponse {
	resp := dto.EventResponse{
		ID:              e.ID.String(),
		Type:            string(e.Type),
		Account:         e.Account.String(),
		Amount:          e.Amount,
		SettledAmount:   e.SettledAmount,
		UnsettledAmount: e.UnsettledAmount,
		RecordIndex:     e.RecordIndex,
		Recovered:       e.Recovered,
		OccurredAt:      e.OccurredAt.Format(time.RFC3339),
	}
	if e.Counterparty != nil {
		resp.Counterparty = e.Counterparty.String()
	}
	return resp
}
