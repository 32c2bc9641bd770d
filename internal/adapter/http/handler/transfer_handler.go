package handler

import (
	"recoverable-ledger/internal/adapter/http/dto"
	"recoverable-ledger/internal/adapter/http/middleware"
	"recoverable-ledger/internal/core/ledger"
	"recoverable-ledger/internal/core/ports"
	"recoverable-ledger/pkg/apperror"
	"recoverable-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles value transfers between accounts.
type TransferHandler struct {
	ledgerSvc ports.LedgerService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(ledgerSvc ports.LedgerService) *TransferHandler {
	return &TransferHandler{ledgerSvc: ledgerSvc}
}

// Transfer handles POST /api/v1/transfers. The sender is the
// authenticated operator; retries with the same reference_id return
// the original result.
func (h *TransferHandler) Transfer(c *gin.Context) {
	operatorID, ok := c.Get(middleware.CtxOperatorID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	to, err := uuid.Parse(req.To)
	if err != nil {
		response.Error(c, apperror.ErrInvalidDestination())
		return
	}

	result, err := h.ledgerSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		From:             operatorID.(uuid.UUID),
		To:               to,
		Amount:           req.Amount,
		IncludeUnsettled: req.IncludeUnsettled,
		ReferenceID:      req.ReferenceID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransferResponse(result))
}

// toTransferResponse converts a ledger result to a DTO.
func toTransferResponse(r *ledger.TransferResult) dto.TransferResponse {
	return dto.TransferResponse{
		UnsettledSpent: r.UnsettledSpent,
		SettledSpent:   r.SettledSpent,
		RecordIndex:    r.RecordIndex,
		FromNonce:      r.FromNonce,
		ToNonce:        r.ToNonce,
	}
}
