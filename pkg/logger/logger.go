package logger

import (
	"strings"

	"go.uber.org/zap"
)

// NOOPLogger discards everything. It is the default for components built
// without an explicit logger.
var NOOPLogger = zap.NewNop().Sugar()

// New builds a logger suited to appEnv: human readable output for local and
// test environments, JSON for everything else.
func New(appEnv string) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)

	switch strings.ToLower(appEnv) {
	case "", "local", "dev", "development", "test":
		l, err = zap.NewDevelopment()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}
