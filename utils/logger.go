package utils

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. It is a no-op until InitLogger runs, so
// packages can log from tests without setup.
var Log = zap.NewNop()

// InitLogger swaps Log for a production (JSON) or development (console) logger.
func InitLogger(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	Log = l
	zap.ReplaceGlobals(l)
	return nil
}
