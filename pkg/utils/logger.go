package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 根据日志级别和格式创建 zap 日志器
//
// 参数:
//   - level: "debug" / "info" / "warn" / "error"，无法识别时使用 info
//   - format: "json" 使用生产配置，其它值使用带颜色的控制台输出
//
// 返回:
//   - *zap.Logger: 日志器实例
//   - error: 构建失败时返回错误
func NewLogger(level, format string) (*zap.Logger, error) {
	return NewLoggerTo(level, format, "stderr")
}

// NewLoggerTo 与 NewLogger 相同，但输出到指定路径
// 终端宿主占用了屏幕，日志只能写入文件
func NewLoggerTo(level, format, path string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}

	return zapCfg.Build()
}

// LoggerOrNop 返回非空的日志器，nil 时退化为空日志器
func LoggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
