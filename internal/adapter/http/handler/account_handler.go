package handler

import (
	"recoverable-ledger/internal/adapter/http/dto"
	"recoverable-ledger/internal/adapter/http/middleware"
	"recoverable-ledger/internal/core/ports"
	"recoverable-ledger/pkg/apperror"
	"recoverable-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles the authenticated operator's account queries.
type AccountHandler struct {
	ledgerSvc ports.LedgerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerSvc ports.LedgerService) *AccountHandler {
	return &AccountHandler{ledgerSvc: ledgerSvc}
}

// GetBalance handles GET /api/v1/accounts/me/balance.
// Query param include_unsettled=true counts not-yet-settled records.
func (h *AccountHandler) GetBalance(c *gin.Context) {
	operatorID, ok := c.Get(middleware.CtxOperatorID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	account := operatorID.(uuid.UUID)
	includeUnsettled := c.Query("include_unsettled") == "true"

	balance := h.ledgerSvc.BalanceOf(c.Request.Context(), account, includeUnsettled)

	response.OK(c, dto.BalanceResponse{
		Account:          account.String(),
		Balance:          balance,
		IncludeUnsettled: includeUnsettled,
	})
}

// GetSpendableBalance handles GET /api/v1/accounts/me/spendable.
// This is the amount a transfer can actually draw: frozen value is
// excluded, and unsettled value only counts when include_unsettled=true.
func (h *AccountHandler) GetSpendableBalance(c *gin.Context) {
	operatorID, ok := c.Get(middleware.CtxOperatorID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	account := operatorID.(uuid.UUID)
	includeUnsettled := c.Query("include_unsettled") == "true"

	balance := h.ledgerSvc.SpendableBalanceOf(c.Request.Context(), account, includeUnsettled)

	response.OK(c, dto.BalanceResponse{
		Account:          account.String(),
		Balance:          balance,
		IncludeUnsettled: includeUnsettled,
	})
}

// GetState handles GET /api/v1/accounts/me/state.
func (h *AccountHandler) GetState(c *gin.Context) {
	operatorID, ok := c.Get(middleware.CtxOperatorID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	account := operatorID.(uuid.UUID)

	state, err := h.ledgerSvc.AccountState(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAccountStateResponse(state))
}

// toAccountStateResponse converts the service view to a DTO.
func toAccountStateResponse(s *ports.AccountStateView) dto.AccountStateResponse {
	return dto.AccountStateResponse{
		Account:          s.Account.String(),
		Balance:          s.Balance,
		SettledBalance:   s.SettledBalance,
		Unsettled:        s.Unsettled,
		FrozenTotal:      s.FrozenTotal,
		Spendable:        s.Spendable,
		SpendableSettled: s.SpendableSettled,
		Nonce:            s.Nonce,
	}
}
