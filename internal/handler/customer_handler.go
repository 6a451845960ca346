package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
	"github.com/davidgg090/paymentAPI/internal/service"
)

type CustomerHandler struct {
	customerService    *service.CustomerService
	transactionService *service.TransactionService
}

func NewCustomerHandler(customerService *service.CustomerService, transactionService *service.TransactionService) *CustomerHandler {
	return &CustomerHandler{
		customerService:    customerService,
		transactionService: transactionService,
	}
}

type CreateCustomerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Address        string `json:"address,omitempty"`
	HashCreditCard string `json:"hash_credit_card"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

type UpdateCustomerRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Address        *string `json:"address,omitempty"`
	HashCreditCard *string `json:"hash_credit_card,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	customer, err := h.customerService.CreateCustomer(&service.CreateCustomerRequest{
		Name:           req.Name,
		Email:          req.Email,
		Address:        req.Address,
		HashCreditCard: req.HashCreditCard,
		IsActive:       req.IsActive,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "customer_id")
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid customer id"))
		return
	}

	customer, err := h.customerService.GetCustomer(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePaging(r)

	customers, err := h.customerService.ListCustomers(offset, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "customer_id")
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid customer id"))
		return
	}

	var req UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	customer, err := h.customerService.UpdateCustomer(id, &domain.CustomerUpdate{
		Name:           req.Name,
		Email:          req.Email,
		Address:        req.Address,
		HashCreditCard: req.HashCreditCard,
		IsActive:       req.IsActive,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "customer_id")
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid customer id"))
		return
	}

	transactions, err := h.transactionService.GetTransactionsByCustomerID(id)
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

func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func parsePaging(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return offset, limit
}
