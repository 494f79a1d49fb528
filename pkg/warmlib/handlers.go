package warmlib

import "github.com/prewarm/prewarm/pkg/logger"

type (
	// WarmingStartHandlerFunc is a function called when a warm cycle begins.
	WarmingStartHandlerFunc func()
	// WarmingCompleteHandlerFunc is a function called when a warm cycle
	// reaches the succeeded terminal state.
	WarmingCompleteHandlerFunc func()
	// WarmingErrorHandlerFunc is a function called when a warm cycle ends
	// with an error. It takes the error as an argument.
	WarmingErrorHandlerFunc func(err error)
)

// Handlers holds the callback hooks invoked by the WarmingScheduler during
// a warm cycle. Any nil handler is replaced by a default no-op (the error
// handler additionally logs) so callers only wire the hooks they care about.
type Handlers struct {
	WarmingStartHandler    WarmingStartHandlerFunc
	WarmingCompleteHandler WarmingCompleteHandlerFunc
	WarmingErrorHandler    WarmingErrorHandlerFunc
}

func (h *Handlers) setDefault(l logger.Logger) {
	if h.WarmingStartHandler == nil {
		h.WarmingStartHandler = func() {}
	}
	if h.WarmingCompleteHandler == nil {
		h.WarmingCompleteHandler = func() {}
	}
	if h.WarmingErrorHandler == nil {
		h.WarmingErrorHandler = func(err error) {
			l.Error("warming: %s", err.Error())
		}
	} else {
		errHandler := h.WarmingErrorHandler
		h.WarmingErrorHandler = func(err error) {
			l.Error("warming: %s", err.Error())
			errHandler(err)
		}
	}
}
