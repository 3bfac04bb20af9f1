package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger. Production gets JSON output at info level,
// everything else gets the human readable development encoder.
func New(env string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	if env == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return log, nil
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are ignored.
func Sync(log *zap.Logger) {
	_ = log.Sync()
}
