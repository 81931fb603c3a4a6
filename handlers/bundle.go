package handlers

// HandlerBundle groups the per-concern handlers so route registration
// takes a single dependency.
type HandlerBundle struct {
	User    *UserHandler
	Booking *BookingHandler
	Slot    *SlotHandler
	Wallet  *WalletHandler
	Chat    *ChatHandler
}
