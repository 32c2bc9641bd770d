package dto

// RegisterRequest is the request body for operator registration.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
}

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	OperatorID string `json:"operator_id"`
	AccessKey  string `json:"access_key"`
	SecretKey  string `json:"secret_key"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// TransferRequest is the request body for a transfer. The sender is the
// authenticated operator; reference_id scopes idempotent retries.
type TransferRequest struct {
	To               string `json:"to" binding:"required,uuid"`
	Amount           int64  `json:"amount" binding:"required,gt=0"`
	ReferenceID      string `json:"reference_id" binding:"required,max=100,safe_id"`
	IncludeUnsettled bool   `json:"include_unsettled"`
}

// TransferResponse reports how a completed transfer drew its funds.
type TransferResponse struct {
	UnsettledSpent int64  `json:"unsettled_spent"`
	SettledSpent   int64  `json:"settled_spent"`
	RecordIndex    uint64 `json:"record_index"`
	FromNonce      uint64 `json:"from_nonce"`
	ToNonce        uint64 `json:"to_nonce"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Account          string `json:"account"`
	Balance          int64  `json:"balance"`
	IncludeUnsettled bool   `json:"include_unsettled"`
}

// AccountStateResponse is the full balance picture of one account.
type AccountStateResponse struct {
	Account          string `json:"account"`
	Balance          int64  `json:"balance"`
	SettledBalance   int64  `json:"settled_balance"`
	Unsettled        int64  `json:"unsettled"`
	FrozenTotal      int64  `json:"frozen_total"`
	Spendable        int64  `json:"spendable"`
	SpendableSettled int64  `json:"spendable_settled"`
	Nonce            uint64 `json:"nonce"`
}

// SuspensionRequest identifies a sub-amount of one record in a custody
// batch.
type SuspensionRequest struct {
	Account     string `json:"account" binding:"required,uuid"`
	RecordIndex uint64 `json:"record_index" binding:"required,gt=0"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

// FreezeRequest is the request body for a freeze batch.
type FreezeRequest struct {
	Suspensions []SuspensionRequest `json:"suspensions" binding:"required,min=1,dive"`
}

// CloseCaseRequest is the request body for resolving a case. With
// recover=true the frozen amounts move to the victim account; otherwise
// they are released back to their holders.
type CloseCaseRequest struct {
	Recover     bool                `json:"recover"`
	Victim      string              `json:"victim" binding:"omitempty,uuid"`
	Suspensions []SuspensionRequest `json:"suspensions" binding:"required,min=1,dive"`
}

// MintRequest is the request body for minting value.
type MintRequest struct {
	To     string `json:"to" binding:"required,uuid"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

// BurnRequest is the request body for burning value.
type BurnRequest struct {
	From   string `json:"from" binding:"required,uuid"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

// EventResponse is one journaled ledger event.
type EventResponse struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Account         string `json:"account"`
	Counterparty    string `json:"counterparty,omitempty"`
	Amount          int64  `json:"amount"`
	SettledAmount   int64  `json:"settled_amount"`
	UnsettledAmount int64  `json:"unsettled_amount"`
	RecordIndex     uint64 `json:"record_index,omitempty"`
	Recovered       bool   `json:"recovered,omitempty"`
	OccurredAt      string `json:"occurred_at"`
}

// EventListResponse wraps a paginated event list.
type EventListResponse struct {
	Items      []EventResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
