package battle

import "github.com/go-logr/logr"

var internalLogger = logr.Logger{}

func SetInternalLogger(logger logr.Logger) {
	internalLogger = logger.WithName("battle")
}

// warn logs a recoverable ambiguity. logr has no warn level so these are tagged instead.
func warn(logger logr.Logger, msg string, keysAndValues ...any) {
	logger.Info(msg, append([]any{"severity", "warning"}, keysAndValues...)...)
}
