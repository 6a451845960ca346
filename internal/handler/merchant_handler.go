package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
	"github.com/davidgg090/paymentAPI/internal/service"
)

type MerchantHandler struct {
	merchantService    *service.MerchantService
	transactionService *service.TransactionService
}

func NewMerchantHandler(merchantService *service.MerchantService, transactionService *service.TransactionService) *MerchantHandler {
	return &MerchantHandler{
		merchantService:    merchantService,
		transactionService: transactionService,
	}
}

type CreateMerchantRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	AuthenticationKey string `json:"authentication_key"`
	AmountAccount     string `json:"amount_account"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

type UpdateMerchantRequest struct {
	Name              *string `json:"name,omitempty"`
	Email             *string `json:"email,omitempty"`
	AuthenticationKey *string `json:"authentication_key,omitempty"`
	AmountAccount     *string `json:"amount_account,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// MerchantResponse renders the balance with fixed two decimals and keeps the
// authentication key out of responses.
type MerchantResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsActive      bool      `json:"is_active"`
	AmountAccount string    `json:"amount_account"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toMerchantResponse(m *domain.Merchant) MerchantResponse {
	return MerchantResponse{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		IsActive:      m.IsActive,
		AmountAccount: m.AmountAccount.StringFixed(2),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (h *MerchantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	amount := decimal.Zero
	if req.AmountAccount != "" {
		parsed, err := decimal.NewFromString(req.AmountAccount)
		if err != nil {
			writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount_account format").WithDetails(err.Error()))
			return
		}
		amount = parsed
	}

	merchant, err := h.merchantService.CreateMerchant(&service.CreateMerchantRequest{
		Name:              req.Name,
		Email:             req.Email,
		AuthenticationKey: req.AuthenticationKey,
		AmountAccount:     amount,
		IsActive:          req.IsActive,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMerchantResponse(merchant))
}

func (h *MerchantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "merchant_id")
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid merchant id"))
		return
	}

	merchant, err := h.merchantService.GetMerchant(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMerchantResponse(merchant))
}

func (h *MerchantHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePaging(r)

	merchants, err := h.merchantService.ListMerchants(offset, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	responses := make([]MerchantResponse, 0, len(merchants))
	for i := range merchants {
		responses = append(responses, toMerchantResponse(&merchants[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *MerchantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "merchant_id")
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid merchant id"))
		return
	}

	var req UpdateMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	update := &domain.MerchantUpdate{
		Name:              req.Name,
		Email:             req.Email,
		AuthenticationKey: req.AuthenticationKey,
		IsActive:          req.IsActive,
	}
	if req.AmountAccount != nil {
		amount, err := decimal.NewFromString(*req.AmountAccount)
		if err != nil {
			writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount_account format").WithDetails(err.Error()))
			return
		}
		update.AmountAccount = &amount
	}

	merchant, err := h.merchantService.UpdateMerchant(id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMerchantResponse(merchant))
}

func (h *MerchantHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "merchant_id")
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid merchant id"))
		return
	}

	transactions, err := h.transactionService.GetTransactionsByMerchantID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}
