package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
	"github.com/davidgg090/paymentAPI/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	processor          *service.Processor
}

func NewTransactionHandler(transactionService *service.TransactionService, processor *service.Processor) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		processor:          processor,
	}
}

type CreateTransactionRequest struct {
	MerchantID     int64  `json:"merchant_id"`
	CustomerID     int64  `json:"customer_id"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	HashCreditCard string `json:"hash_credit_card"`
}

type UpdateTransactionRequest struct {
	MerchantID     *int64  `json:"merchant_id,omitempty"`
	CustomerID     *int64  `json:"customer_id,omitempty"`
	Amount         *string `json:"amount,omitempty"`
	Currency       *string `json:"currency,omitempty"`
	State          *string `json:"state,omitempty"`
	HashCreditCard *string `json:"hash_credit_card,omitempty"`
}

type TransactionResponse struct {
	ID             int64     `json:"id"`
	MerchantID     int64     `json:"merchant_id"`
	CustomerID     int64     `json:"customer_id"`
	Amount         string    `json:"amount"`
	Currency       string    `json:"currency"`
	State          string    `json:"state"`
	HashCreditCard string    `json:"hash_credit_card"`
	Token          string    `json:"token"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             tx.ID,
		MerchantID:     tx.MerchantID,
		CustomerID:     tx.CustomerID,
		Amount:         tx.Amount.StringFixed(2),
		Currency:       tx.Currency,
		State:          string(tx.State),
		HashCreditCard: tx.HashCreditCard,
		Token:          tx.Token,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error()))
		return
	}

	tx, err := h.transactionService.CreateTransaction(&service.CreateTransactionRequest{
		MerchantID:     req.MerchantID,
		CustomerID:     req.CustomerID,
		Amount:         amount,
		Currency:       req.Currency,
		HashCreditCard: req.HashCreditCard,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["transaction_id"], 10, 64)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid transaction id"))
		return
	}

	tx, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	tx, err := h.transactionService.GetTransactionByToken(token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["transaction_id"], 10, 64)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid transaction id"))
		return
	}

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	update := &domain.TransactionUpdate{
		MerchantID:     req.MerchantID,
		CustomerID:     req.CustomerID,
		HashCreditCard: req.HashCreditCard,
		Currency:       req.Currency,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error()))
			return
		}
		update.Amount = &amount
	}
	if req.State != nil {
		state := domain.State(*req.State)
		update.State = &state
	}

	tx, err := h.transactionService.UpdateTransaction(id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// Process captures the pending transaction identified by the token path
// variable.
func (h *TransactionHandler) Process(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, domain.IntentCapture)
}

// Refund reverses the pending transaction identified by the token path
// variable.
func (h *TransactionHandler) Refund(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, domain.IntentRefund)
}

func (h *TransactionHandler) process(w http.ResponseWriter, r *http.Request, intent domain.Intent) {
	token := mux.Vars(r)["token"]

	tx, err := h.processor.Process(token, intent)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}
