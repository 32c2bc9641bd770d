package handler

import (
	"recoverable-ledger/internal/adapter/http/dto"
	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ports"
	"recoverable-ledger/pkg/apperror"
	"recoverable-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustodyHandler handles the recovery authority's endpoints: freezing
// suspect records, closing cases, supply changes, and account inspection.
type CustodyHandler struct {
	ledgerSvc ports.LedgerService
	assetSvc  ports.AssetService
}

// NewCustodyHandler creates a new CustodyHandler.
func NewCustodyHandler(ledgerSvc ports.LedgerService, assetSvc ports.AssetService) *CustodyHandler {
	return &CustodyHandler{ledgerSvc: ledgerSvc, assetSvc: assetSvc}
}

// Freeze handles POST /api/v1/custody/freeze. The whole batch is
// validated before any record changes; a bad entry rejects everything.
func (h *CustodyHandler) Freeze(c *gin.Context) {
	var req dto.FreezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	suspensions, err := toSuspensions(req.Suspensions)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.ledgerSvc.Freeze(c.Request.Context(), suspensions); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"frozen": len(suspensions)})
}

// CloseCase handles POST /api/v1/custody/cases/close. With recover=true
// the frozen amounts move to the victim as a fresh unsettled record;
// otherwise they are released back to their holders.
func (h *CustodyHandler) CloseCase(c *gin.Context) {
	var req dto.CloseCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var victim uuid.UUID
	if req.Recover {
		parsed, err := uuid.Parse(req.Victim)
		if err != nil || parsed == uuid.Nil {
			response.Error(c, apperror.ErrInvalidDestination())
			return
		}
		victim = parsed
	}

	suspensions, err := toSuspensions(req.Suspensions)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.ledgerSvc.CloseCase(c.Request.Context(), req.Recover, victim, suspensions); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"closed": len(suspensions), "recovered": req.Recover})
}

// Mint handles POST /api/v1/custody/mint.
func (h *CustodyHandler) Mint(c *gin.Context) {
	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	to, err := uuid.Parse(req.To)
	if err != nil {
		response.Error(c, apperror.ErrInvalidDestination())
		return
	}

	if err := h.assetSvc.Mint(c.Request.Context(), to, req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"to": to.String(), "amount": req.Amount})
}

// Burn handles POST /api/v1/custody/burn.
func (h *CustodyHandler) Burn(c *gin.Context) {
	var req dto.BurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	from, err := uuid.Parse(req.From)
	if err != nil {
		response.Error(c, apperror.ErrAccountNotFound())
		return
	}

	if err := h.assetSvc.Burn(c.Request.Context(), from, req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"from": from.String(), "amount": req.Amount})
}

// GetAccountState handles GET /api/v1/custody/accounts/:id/state.
// The authority inspects any account when building a case.
func (h *CustodyHandler) GetAccountState(c *gin.Context) {
	account, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrAccountNotFound())
		return
	}

	state, err := h.ledgerSvc.AccountState(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAccountStateResponse(state))
}

// toSuspensions converts and validates the suspension batch DTOs.
func toSuspensions(items []dto.SuspensionRequest) ([]domain.Suspension, error) {
	suspensions := make([]domain.Suspension, 0, len(items))
	for _, item := range items {
		account, err := uuid.Parse(item.Account)
		if err != nil {
			return nil, apperror.ErrAccountNotFound()
		}
		suspensions = append(suspensions, domain.Suspension{
			Account:     account,
			RecordIndex: item.RecordIndex,
			Amount:      item.Amount,
		})
	}
	return suspensions, nil
}
