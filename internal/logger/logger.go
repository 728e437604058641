package logger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects encoding, verbosity and sink. Service, when set, is attached to
// every entry so API and CLI logs can share a collector.
type Options struct {
	JSON    bool
	Debug   bool
	Output  string
	Service string
}

func New(opts Options) (*zap.Logger, error) {
	output := opts.Output
	if output == "" {
		output = "stdout"
	}

	sink, _, err := zap.Open(output)
	if err != nil {
		return nil, fmt.Errorf("open log output %q: %w", output, err)
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	zopts := []zap.Option{zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(sink))}
	if opts.Service != "" {
		zopts = append(zopts, zap.Fields(zap.String("service", opts.Service)))
	}

	return zap.New(zapcore.NewCore(enc, sink, level), zopts...), nil
}

// ForRequest tags log with a fresh req_id and the operation name. The id is returned
// so callers can echo it elsewhere.
func ForRequest(log *zap.Logger, op string) (*zap.Logger, string) {
	rid := uuid.NewString()
	return log.With(zap.String("req_id", rid), zap.String("op", op)), rid
}

// Truncate shortens s to limit runes, appending an ellipsis when it was cut.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	if runes := []rune(s); len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return s
}
