package wallet

import (
	"context"
	"fmt"

	txnRepo "astromitra/database/repository/transaction"
	userRepo "astromitra/database/repository/user"
	"astromitra/models"
	"astromitra/services/notification"
	"astromitra/state"
	"astromitra/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentFailureNotice is shown on any gateway cancel or failure.
const PaymentFailureNotice = "Payment failed, your wallet was not charged"

// Gateway abstracts the payment provider for the top-up flow.
type Gateway interface {
	// CreateIntent registers a pending payment of amount rupees and
	// returns (reference id, client secret).
	CreateIntent(ctx context.Context, req models.TopUpRequest) (string, string, error)
	// VerifyPayment confirms that the referenced payment succeeded and
	// returns the amount actually paid, in rupees.
	VerifyPayment(ctx context.Context, reference string) (float64, error)
}

// StripeGateway implements Gateway on Stripe PaymentIntents. Amounts are
// sent in minor units (paise) with currency INR.
type StripeGateway struct{}

func (StripeGateway) CreateIntent(ctx context.Context, req models.TopUpRequest) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyINR)),
		Metadata: map[string]string{"userId": req.UserID},
	}
	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", "", &utils.PaymentError{Err: err}
	}
	return intent.ID, intent.ClientSecret, nil
}

func (StripeGateway) VerifyPayment(ctx context.Context, reference string) (float64, error) {
	intent, err := paymentintent.Get(reference, nil)
	if err != nil {
		return 0, &utils.PaymentError{Err: err}
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return 0, &utils.PaymentError{Err: fmt.Errorf("payment %s in status %s", reference, intent.Status)}
	}
	return float64(intent.Amount) / 100, nil
}

// WalletService owns the top-up and consultation-charge flows. The
// ledger is append-only; the wallet balance moves only after the gateway
// confirms.
type WalletService interface {
	// BeginTopUp registers a pending gateway payment and returns its
	// client secret for the payment sheet.
	BeginTopUp(ctx context.Context, req models.TopUpRequest) (string, bool)
	// CompleteTopUp verifies the gateway reference, appends a credit
	// entry, and increases the wallet balance by exactly the amount.
	CompleteTopUp(ctx context.Context, req models.TopUpRequest, reference string) bool
	// Charge appends a debit entry naming the astrologer and decreases
	// the wallet balance.
	Charge(ctx context.Context, userID, astrologerName string, amount float64) bool
	// FetchTransactions replaces the cached ledger wholesale.
	FetchTransactions(ctx context.Context, userID string) bool
}

// DefaultWalletService is the production implementation.
type DefaultWalletService struct {
	Users        userRepo.UserRepository
	Transactions txnRepo.TransactionRepository
	Gateway      Gateway
	State        *state.Store
	Notifier     notification.Notifier
}

func (s *DefaultWalletService) fail(op string, err error) bool {
	utils.GetLogger().Error(op, zap.Error(err))
	s.Notifier.Notice(utils.GenericFailureNotice)
	return false
}

// BeginTopUp returns the gateway client secret, or false on gateway
// failure. No wallet mutation happens here.
func (s *DefaultWalletService) BeginTopUp(ctx context.Context, req models.TopUpRequest) (string, bool) {
	secret := ""
	ok := false
	_ = s.State.Busy(func() error {
		_, cs, err := s.Gateway.CreateIntent(ctx, req)
		if err != nil {
			utils.GetLogger().Error("BeginTopUp", zap.Error(err))
			s.Notifier.Notice(PaymentFailureNotice)
			return nil
		}
		secret = cs
		ok = true
		return nil
	})
	return secret, ok
}

// CompleteTopUp verifies the payment then applies the wallet credit. On
// gateway failure or cancel nothing is written. Each gateway reference
// is consumed by the ledger entry it credits, so a replayed reference is
// rejected before anything moves.
func (s *DefaultWalletService) CompleteTopUp(ctx context.Context, req models.TopUpRequest, reference string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		paid, err := s.Gateway.VerifyPayment(ctx, reference)
		if err != nil {
			utils.GetLogger().Error("CompleteTopUp", zap.Error(err))
			s.Notifier.Notice(PaymentFailureNotice)
			return nil
		}
		// Compare in paise, the units the gateway settles in.
		if int64(paid*100) != int64(req.Amount*100) {
			utils.GetLogger().Error("CompleteTopUp",
				zap.String("reference", reference),
				zap.Float64("paid", paid),
				zap.Float64("requested", req.Amount))
			s.Notifier.Notice(PaymentFailureNotice)
			return nil
		}

		used, err := s.Transactions.ReferenceExists(reference)
		if err != nil {
			s.fail("CompleteTopUp", &utils.PersistenceError{Op: "look up reference", Err: err})
			return nil
		}
		if used {
			utils.GetLogger().Warn("CompleteTopUp", zap.String("reference", reference))
			s.Notifier.Notice(PaymentFailureNotice)
			return nil
		}

		txn := &models.Transaction{
			UserID:    req.UserID,
			Amount:    req.Amount,
			Type:      models.TransactionCredit,
			Reference: reference,
		}
		if err := s.Transactions.Append(txn); err != nil {
			s.fail("CompleteTopUp", &utils.PersistenceError{Op: "append transaction", Err: err})
			return nil
		}
		if err := s.Users.AdjustWallet(req.UserID, req.Amount); err != nil {
			s.fail("CompleteTopUp", &utils.PersistenceError{Op: "adjust wallet", Err: err})
			return nil
		}
		ok = true
		return nil
	})
	if ok {
		return s.FetchTransactions(ctx, req.UserID)
	}
	return false
}

// Charge records a consultation debit against the requester's wallet.
func (s *DefaultWalletService) Charge(ctx context.Context, userID, astrologerName string, amount float64) bool {
	ok := false
	_ = s.State.Busy(func() error {
		txn := &models.Transaction{
			UserID:         userID,
			Amount:         amount,
			Type:           models.TransactionDebit,
			AstrologerName: astrologerName,
		}
		if err := s.Transactions.Append(txn); err != nil {
			s.fail("Charge", &utils.PersistenceError{Op: "append transaction", Err: err})
			return nil
		}
		if err := s.Users.AdjustWallet(userID, -amount); err != nil {
			s.fail("Charge", &utils.PersistenceError{Op: "adjust wallet", Err: err})
			return nil
		}
		ok = true
		return nil
	})
	if ok {
		return s.FetchTransactions(ctx, userID)
	}
	return false
}

// FetchTransactions replaces the cached ledger wholesale, newest first.
func (s *DefaultWalletService) FetchTransactions(ctx context.Context, userID string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		list, err := s.Transactions.ListByUser(userID)
		if err != nil {
			s.fail("FetchTransactions", err)
			return nil
		}
		s.State.SetTransactions(list)
		ok = true
		return nil
	})
	return ok
}
