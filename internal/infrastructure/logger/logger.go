package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vendaforte/cartela-reward-service/internal/config"
)

// MustInit builds the process logger from log_config and installs it as
// the zap global. Debug verbosity is a config knob, not an env check.
func MustInit(cfg *config.RewardConfig) *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.LogConfig.LogLevel); err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.LogConfig.LogFormat == "console" || cfg.Env == "dev" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	output := cfg.LogConfig.LogOutput
	if output == "" {
		output = "stdout"
	}
	zapCfg.OutputPaths = []string{output}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	log := zap.Must(zapCfg.Build())
	log = log.With(zap.String("env", cfg.Env), zap.String("service", "cartela-reward-service"))

	zap.ReplaceGlobals(log)
	return log
}
