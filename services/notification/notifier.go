package notification

import "astromitra/utils"

// Notifier surfaces user-facing notices (toasts). Data-access operations
// report failures through it instead of returning errors to their
// callers.
type Notifier interface {
	Notice(message string)
}

// LogNotifier is the default sink, writing notices to the logger. The
// presentation layer swaps in its own implementation.
type LogNotifier struct{}

func (LogNotifier) Notice(message string) {
	utils.GetLogger().Sugar().Infof("notice: %s", message)
}
