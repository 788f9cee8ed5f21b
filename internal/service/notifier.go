package service

// Notifier surfaces user-facing notices for session and summarization
// outcomes. All failures from login, register, and summarization calls are
// recovered into a notice; none propagate as unhandled errors.
type Notifier interface {
	// Success reports a completed operation.
	Success(msg string)
	// Info reports a neutral state change, such as logging out.
	Info(msg string)
	// Error reports a failed operation.
	Error(msg string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Info(string)    {}
func (NopNotifier) Error(string)   {}
