package service

import (
	"log/slog"

	"github.com/davidgg090/paymentAPI/internal/bank"
	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

// Processor drives the transaction lifecycle. Process is the only mutation
// path for transactions after creation, and the only writer of merchant
// balances.
type Processor struct {
	store    domain.Store
	verifier bank.CardVerifier
	logger   *slog.Logger
}

func NewProcessor(store domain.Store, verifier bank.CardVerifier, logger *slog.Logger) *Processor {
	return &Processor{
		store:    store,
		verifier: verifier,
		logger:   logger,
	}
}

// Process applies intent (capture or refund) to the pending transaction
// identified by token.
//
// The whole read-check-mutate-write sequence runs inside one database
// transaction. The transaction row is locked before the state check and the
// merchant row before the balance write, so two concurrent calls on the same
// token serialize: the second sees a terminal state and gets invalid_state.
//
// Validation failures (customer or merchant missing/inactive) write the
// failed state and commit it before surfacing the error. A card-hash
// mismatch writes nothing: the transaction stays pending and may be retried.
func (p *Processor) Process(token string, intent domain.Intent) (*domain.Transaction, error) {
	if intent != domain.IntentCapture && intent != domain.IntentRefund {
		return nil, errors.NewAppErrorf(errors.InvalidInput, "unknown intent %q", intent)
	}

	p.logger.Info("Processing transaction", "token", token, "intent", intent)

	var (
		result  *domain.Transaction
		procErr *errors.AppError
	)

	err := p.store.WithTransaction(func(s domain.Store) error {
		tx, err := s.Transactions().GetTransactionByTokenForUpdate(token)
		if err != nil {
			return err
		}
		if tx == nil {
			procErr = errors.ErrTransactionNotFound
			return nil
		}
		if tx.State != domain.StatePending {
			procErr = errors.ErrInvalidState.WithDetails("current state: " + string(tx.State))
			return nil
		}

		// Activation state must be current, not the state at creation time.
		customer, err := s.Customers().GetCustomerByID(tx.CustomerID)
		if err != nil {
			return err
		}
		if !customer.Chargeable() {
			tx.State = domain.StateFailed
			if err := s.Transactions().SaveTransaction(tx); err != nil {
				return err
			}
			procErr = errors.ErrCustomerInvalid
			return nil
		}

		merchant, err := s.Merchants().GetMerchantByIDForUpdate(tx.MerchantID)
		if err != nil {
			return err
		}
		if merchant == nil || !merchant.IsActive {
			tx.State = domain.StateFailed
			if err := s.Transactions().SaveTransaction(tx); err != nil {
				return err
			}
			procErr = errors.ErrMerchantInvalid
			return nil
		}

		if !p.verifier.Verify(tx.HashCreditCard, customer.HashCreditCard) {
			procErr = errors.ErrInvalidCard
			return nil
		}

		merchant.ApplyBalance(tx.Amount, intent.Direction())
		tx.State = intent.TargetState()

		if err := s.Merchants().SaveMerchant(merchant); err != nil {
			return err
		}
		if err := s.Transactions().SaveTransaction(tx); err != nil {
			return err
		}

		result = tx
		return nil
	})

	if err != nil {
		p.logger.Error("Transaction processing failed", "token", token, "intent", intent, "error", err)
		return nil, err
	}
	if procErr != nil {
		p.logger.Warn("Transaction rejected", "token", token, "intent", intent, "reason", procErr.Code)
		return nil, procErr
	}

	p.logger.Info("Transaction processed",
		"transaction_id", result.ID,
		"token", token,
		"state", result.State,
		"amount", result.Amount)
	return result, nil
}
