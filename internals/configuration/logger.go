package configuration

import (
	"go.uber.org/zap"
)

// InitLogger initializes the global zap logger and replaces zap.L()
func InitLogger(production bool) zap.Config {
	var zapConfig zap.Config
	if production {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.DisableStacktrace = true

	logger, err := zapConfig.Build()
	if err != nil {
		zap.L().Fatal("Logger initialization", zap.Error(err))
	}
	zap.ReplaceGlobals(logger)
	return zapConfig
}
