package wallet

import (
	"context"
	"errors"
	"testing"

	"astromitra/models"
	"astromitra/state"
)

type stubTxnRepo struct {
	entries []models.Transaction
	err     error
}

func (r *stubTxnRepo) Append(txn *models.Transaction) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *txn)
	return nil
}

func (r *stubTxnRepo) ReferenceExists(reference string) (bool, error) {
	for _, e := range r.entries {
		if e.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubTxnRepo) ListByUser(userID string) ([]models.Transaction, error) {
	var out []models.Transaction
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, r.err
}

type stubWalletUserRepo struct {
	balances map[string]float64
	err      error
}

func (r *stubWalletUserRepo) GetByID(string) (*models.User, error) { return nil, nil }

func (r *stubWalletUserRepo) GetByPhone(string) (*models.User, error) { return nil, nil }

func (r *stubWalletUserRepo) Create(*models.User) error { return nil }

func (r *stubWalletUserRepo) UpdateFields(string, map[string]any) error { return nil }

func (r *stubWalletUserRepo) AdjustWallet(id string, delta float64) error {
	if r.err != nil {
		return r.err
	}
	if r.balances == nil {
		r.balances = make(map[string]float64)
	}
	r.balances[id] += delta
	return nil
}

type stubGateway struct {
	paid      float64
	verifyErr error
	verified  []string
}

func (g *stubGateway) CreateIntent(_ context.Context, req models.TopUpRequest) (string, string, error) {
	return "pi_123", "secret_123", nil
}

func (g *stubGateway) VerifyPayment(_ context.Context, reference string) (float64, error) {
	if g.verifyErr != nil {
		return 0, g.verifyErr
	}
	g.verified = append(g.verified, reference)
	return g.paid, nil
}

type recordingNotifier struct{ notices []string }

func (n *recordingNotifier) Notice(message string) { n.notices = append(n.notices, message) }

func newTestService(users *stubWalletUserRepo, txns *stubTxnRepo, gw Gateway) (*DefaultWalletService, *state.Store, *recordingNotifier) {
	store := state.New(nil)
	n := &recordingNotifier{}
	return &DefaultWalletService{
		Users:        users,
		Transactions: txns,
		Gateway:      gw,
		State:        store,
		Notifier:     n,
	}, store, n
}

func TestBeginTopUpReturnsClientSecret(t *testing.T) {
	svc, _, _ := newTestService(&stubWalletUserRepo{}, &stubTxnRepo{}, &stubGateway{})

	secret, ok := svc.BeginTopUp(context.Background(), models.TopUpRequest{UserID: "u1", Amount: 100})
	if !ok || secret != "secret_123" {
		t.Fatalf("got (%q, %v)", secret, ok)
	}
}

func TestCompleteTopUpCreditsExactAmount(t *testing.T) {
	users := &stubWalletUserRepo{}
	txns := &stubTxnRepo{}
	svc, store, _ := newTestService(users, txns, &stubGateway{paid: 100})

	req := models.TopUpRequest{UserID: "u1", Amount: 100}
	if !svc.CompleteTopUp(context.Background(), req, "pi_123") {
		t.Fatal("expected top-up to complete")
	}
	if got := users.balances["u1"]; got != 100 {
		t.Fatalf("balance = %v, want 100", got)
	}
	if len(txns.entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(txns.entries))
	}
	e := txns.entries[0]
	if e.Type != models.TransactionCredit || e.Amount != 100 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Reference != "pi_123" {
		t.Fatalf("entry did not consume the payment reference: %+v", e)
	}
	if got := store.Transactions(); len(got) != 1 {
		t.Fatalf("cached ledger not refreshed: %+v", got)
	}
}

func TestCompleteTopUpWritesNothingOnGatewayFailure(t *testing.T) {
	users := &stubWalletUserRepo{}
	txns := &stubTxnRepo{}
	svc, _, n := newTestService(users, txns, &stubGateway{verifyErr: errors.New("payment cancelled")})

	req := models.TopUpRequest{UserID: "u1", Amount: 100}
	if svc.CompleteTopUp(context.Background(), req, "pi_123") {
		t.Fatal("expected top-up to fail")
	}
	if len(txns.entries) != 0 {
		t.Fatal("no ledger entry may be written on gateway failure")
	}
	if got := users.balances["u1"]; got != 0 {
		t.Fatalf("balance moved to %v on failed payment", got)
	}
	if len(n.notices) != 1 || n.notices[0] != PaymentFailureNotice {
		t.Fatalf("expected payment failure notice, got %+v", n.notices)
	}
}

func TestCompleteTopUpRejectsReplayedReference(t *testing.T) {
	users := &stubWalletUserRepo{}
	txns := &stubTxnRepo{}
	svc, _, n := newTestService(users, txns, &stubGateway{paid: 100})

	req := models.TopUpRequest{UserID: "u1", Amount: 100}
	if !svc.CompleteTopUp(context.Background(), req, "pi_123") {
		t.Fatal("first completion should succeed")
	}
	if svc.CompleteTopUp(context.Background(), req, "pi_123") {
		t.Fatal("replayed reference must be rejected")
	}
	if got := users.balances["u1"]; got != 100 {
		t.Fatalf("balance = %v after replay, want 100", got)
	}
	if len(txns.entries) != 1 {
		t.Fatalf("expected 1 ledger entry after replay, got %d", len(txns.entries))
	}
	if len(n.notices) != 1 || n.notices[0] != PaymentFailureNotice {
		t.Fatalf("expected payment failure notice on replay, got %+v", n.notices)
	}
}

func TestCompleteTopUpRejectsAmountMismatch(t *testing.T) {
	users := &stubWalletUserRepo{}
	txns := &stubTxnRepo{}
	svc, _, n := newTestService(users, txns, &stubGateway{paid: 1})

	req := models.TopUpRequest{UserID: "u1", Amount: 10000}
	if svc.CompleteTopUp(context.Background(), req, "pi_123") {
		t.Fatal("expected mismatched amount to be rejected")
	}
	if len(txns.entries) != 0 {
		t.Fatal("no ledger entry may be written on amount mismatch")
	}
	if got := users.balances["u1"]; got != 0 {
		t.Fatalf("balance moved to %v on mismatched payment", got)
	}
	if len(n.notices) != 1 || n.notices[0] != PaymentFailureNotice {
		t.Fatalf("expected payment failure notice, got %+v", n.notices)
	}
}

func TestChargeAppendsDebitWithCounterpart(t *testing.T) {
	users := &stubWalletUserRepo{balances: map[string]float64{"u1": 500}}
	txns := &stubTxnRepo{}
	svc, _, _ := newTestService(users, txns, &stubGateway{})

	if !svc.Charge(context.Background(), "u1", "Pandit Ravi", 150) {
		t.Fatal("expected charge to succeed")
	}
	if got := users.balances["u1"]; got != 350 {
		t.Fatalf("balance = %v, want 350", got)
	}
	e := txns.entries[0]
	if e.Type != models.TransactionDebit || e.AstrologerName != "Pandit Ravi" {
		t.Fatalf("unexpected debit entry: %+v", e)
	}
}

func TestLedgerIsAppendOnlyAcrossOperations(t *testing.T) {
	users := &stubWalletUserRepo{}
	txns := &stubTxnRepo{}
	svc, _, _ := newTestService(users, txns, &stubGateway{paid: 200})

	_ = svc.CompleteTopUp(context.Background(), models.TopUpRequest{UserID: "u1", Amount: 200}, "pi_1")
	_ = svc.Charge(context.Background(), "u1", "Pandit Ravi", 50)

	if len(txns.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(txns.entries))
	}
	if got := users.balances["u1"]; got != 150 {
		t.Fatalf("balance = %v, want 150", got)
	}
}
