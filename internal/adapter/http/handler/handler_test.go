package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recoverable-ledger/internal/adapter/http/dto"
	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ledger"
	"recoverable-ledger/internal/core/ports"
	"recoverable-ledger/internal/core/ports/mocks"
	"recoverable-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Auth Handler Tests ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	operatorID := uuid.New()
	mockAuth.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Username:    "testuser",
		Password:    "password123",
		DisplayName: "Test Operator",
	}).Return(&ports.RegisterResponse{
		OperatorID: operatorID,
		AccessKey:  "ak_test",
		SecretKey:  "sk_test",
	}, nil)

	body, _ := json.Marshal(dto.RegisterRequest{
		Username:    "testuser",
		Password:    "password123",
		DisplayName: "Test Operator",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, operatorID.String(), data["operator_id"])
	assert.Equal(t, "ak_test", data["access_key"])
	assert.Equal(t, "sk_test", data["secret_key"])
}

func TestRegister_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	// Empty body => binding error
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrUsernameExists())

	body, _ := json.Marshal(dto.RegisterRequest{
		Username:    "taken",
		Password:    "password123",
		DisplayName: "Operator",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(24 * time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "testuser", "password123").Return("jwt-token-123", expiry, nil)

	body, _ := json.Marshal(dto.LoginRequest{
		Username: "testuser",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token-123", data["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "bad", "bad").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	body, _ := json.Marshal(dto.LoginRequest{
		Username: "bad",
		Password: "bad",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Transfer Handler Tests ---

func TestTransfer_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransferHandler(mockLedger)

	from := uuid.New()
	to := uuid.New()

	mockLedger.EXPECT().Transfer(gomock.Any(), ports.TransferRequest{
		From:        from,
		To:          to,
		Amount:      500,
		ReferenceID: "ref-001",
	}).Return(&ledger.TransferResult{
		UnsettledSpent: 0,
		SettledSpent:   500,
		RecordIndex:    1,
		FromNonce:      1,
		ToNonce:        0,
	}, nil)

	body, _ := json.Marshal(dto.TransferRequest{
		To:          to.String(),
		Amount:      500,
		ReferenceID: "ref-001",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("operator_id", from)

	h.Transfer(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(500), data["settled_spent"])
	assert.Equal(t, float64(1), data["record_index"])
}

func TestTransfer_MissingOperatorID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransferHandler(mockLedger)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h.Transfer(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransferHandler(mockLedger)

	from := uuid.New()
	mockLedger.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientFunds(100, 9999))

	body, _ := json.Marshal(dto.TransferRequest{
		To:          uuid.NewString(),
		Amount:      9999,
		ReferenceID: "ref-002",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("operator_id", from)

	h.Transfer(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestTransfer_InvalidDestination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransferHandler(mockLedger)

	// Missing reference_id => binding error
	body, _ := json.Marshal(map[string]interface{}{
		"to":     uuid.NewString(),
		"amount": 100,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("operator_id", uuid.New())

	h.Transfer(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Account Handler Tests ---

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockLedger)

	account := uuid.New()
	mockLedger.EXPECT().BalanceOf(gomock.Any(), account, true).Return(int64(100000))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?include_unsettled=true", nil)
	c.Set("operator_id", account)

	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(100000), data["balance"])
	assert.Equal(t, true, data["include_unsettled"])
}

func TestGetSpendableBalance_ExcludesUnsettledByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockLedger)

	account := uuid.New()
	mockLedger.EXPECT().SpendableBalanceOf(gomock.Any(), account, false).Return(int64(40))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("operator_id", account)

	h.GetSpendableBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(40), data["balance"])
	assert.Equal(t, false, data["include_unsettled"])
}

func TestGetState_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockLedger)

	account := uuid.New()
	mockLedger.EXPECT().AccountState(gomock.Any(), account).Return(&ports.AccountStateView{
		Account:          account,
		Balance:          100,
		SettledBalance:   40,
		Unsettled:        60,
		FrozenTotal:      10,
		Spendable:        30,
		SpendableSettled: 30,
		Nonce:            2,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("operator_id", account)

	h.GetState(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["balance"])
	assert.Equal(t, float64(60), data["unsettled"])
	assert.Equal(t, float64(10), data["frozen_total"])
	assert.Equal(t, float64(2), data["nonce"])
}

// --- Custody Handler Tests ---

func TestFreeze_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	account := uuid.New()
	mockLedger.EXPECT().Freeze(gomock.Any(), []domain.Suspension{
		{Account: account, RecordIndex: 1, Amount: 40},
	}).Return(nil)

	body, _ := json.Marshal(dto.FreezeRequest{
		Suspensions: []dto.SuspensionRequest{
			{Account: account.String(), RecordIndex: 1, Amount: 40},
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Freeze(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["frozen"])
}

func TestFreeze_EmptyBatchRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	body, _ := json.Marshal(dto.FreezeRequest{Suspensions: []dto.SuspensionRequest{}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Freeze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFreeze_OverHeadroom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	account := uuid.New()
	mockLedger.EXPECT().Freeze(gomock.Any(), gomock.Any()).Return(apperror.ErrInvalidAmount("freeze exceeds record headroom"))

	body, _ := json.Marshal(dto.FreezeRequest{
		Suspensions: []dto.SuspensionRequest{
			{Account: account.String(), RecordIndex: 1, Amount: 999},
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Freeze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCloseCase_Recover(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	account := uuid.New()
	victim := uuid.New()
	mockLedger.EXPECT().CloseCase(gomock.Any(), true, victim, []domain.Suspension{
		{Account: account, RecordIndex: 1, Amount: 40},
	}).Return(nil)

	body, _ := json.Marshal(dto.CloseCaseRequest{
		Recover: true,
		Victim:  victim.String(),
		Suspensions: []dto.SuspensionRequest{
			{Account: account.String(), RecordIndex: 1, Amount: 40},
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CloseCase(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["recovered"])
}

func TestCloseCase_RecoverWithoutVictim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	account := uuid.New()
	body, _ := json.Marshal(dto.CloseCaseRequest{
		Recover: true,
		Suspensions: []dto.SuspensionRequest{
			{Account: account.String(), RecordIndex: 1, Amount: 40},
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CloseCase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCloseCase_Release(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	account := uuid.New()
	mockLedger.EXPECT().CloseCase(gomock.Any(), false, uuid.Nil, gomock.Any()).Return(nil)

	body, _ := json.Marshal(dto.CloseCaseRequest{
		Recover: false,
		Suspensions: []dto.SuspensionRequest{
			{Account: account.String(), RecordIndex: 2, Amount: 15},
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CloseCase(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMint_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	to := uuid.New()
	mockAsset.EXPECT().Mint(gomock.Any(), to, int64(1000)).Return(nil)

	body, _ := json.Marshal(dto.MintRequest{To: to.String(), Amount: 1000})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Mint(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBurn_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	from := uuid.New()
	mockAsset.EXPECT().Burn(gomock.Any(), from, int64(500)).Return(apperror.ErrInsufficientFunds(100, 500))

	body, _ := json.Marshal(dto.BurnRequest{From: from.String(), Amount: 500})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Burn(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestGetAccountState_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockAsset := mocks.NewMockAssetService(ctrl)
	h := NewCustodyHandler(mockLedger, mockAsset)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetAccountState(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Event Handler Tests ---

func TestListEvents_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewEventHandler(mockLedger)

	account := uuid.New()
	counterparty := uuid.New()
	now := time.Now()

	mockLedger.EXPECT().ListEvents(gomock.Any(), gomock.Any()).Return([]domain.LedgerEvent{
		{
			ID:            uuid.New(),
			Type:          domain.EventTransferCompleted,
			Account:       account,
			Counterparty:  &counterparty,
			Amount:        500,
			SettledAmount: 500,
			OccurredAt:    now,
		},
	}, int64(1), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=1&page_size=20", nil)
	c.Set("operator_id", account)

	h.ListEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, float64(1), data["total"])
	assert.Equal(t, float64(1), data["total_pages"])

	item := items[0].(map[string]interface{})
	assert.Equal(t, "TRANSFER_COMPLETED", item["type"])
	assert.Equal(t, counterparty.String(), item["counterparty"])
}

func TestListEvents_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewEventHandler(mockLedger)

	account := uuid.New()
	mockLedger.EXPECT().ListEvents(gomock.Any(), gomock.Any()).Return(nil, int64(0), apperror.InternalError(errors.New("db down")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("operator_id", account)

	h.ListEvents(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListAccountEvents_FilterByType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewEventHandler(mockLedger)

	account := uuid.New()
	freezeType := domain.EventFreezeApplied

	mockLedger.EXPECT().ListEvents(gomock.Any(), ports.EventListParams{
		Account:  account,
		Type:     &freezeType,
		Page:     1,
		PageSize: 20,
	}).Return([]domain.LedgerEvent{}, int64(0), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?type=FREEZE_APPLIED", nil)
	c.Params = gin.Params{{Key: "id", Value: account.String()}}

	h.ListAccountEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Health Check Test ---

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
