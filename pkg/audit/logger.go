package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the default Recorder: structured zap output plus optional DB
// persistence. The persist step runs detached from the request context so a
// client disconnect cannot abandon a started audit write; failures are
// retried once and then logged as a warning.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	persistFunc func(ctx context.Context, event Event) error
}

func NewLogger(serviceName string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return &Logger{
		zapLogger:   logger,
		serviceName: serviceName,
	}
}

// SetPersistFunc wires the DB persistence step.
func (l *Logger) SetPersistFunc(f func(ctx context.Context, event Event) error) {
	l.persistFunc = f
}

func (l *Logger) Record(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Severity = SeverityFor(event.Event)

	level := zapcore.InfoLevel
	switch event.Severity {
	case SeverityWARN:
		level = zapcore.WarnLevel
	case SeverityHIGH:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(event.Severity)),
	}
	if event.ViewerID != "" {
		fields = append(fields, zap.String("viewer_id", event.ViewerID))
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_id", event.TargetID))
	}
	if event.Action != "" {
		fields = append(fields, zap.String("action", event.Action))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)

	if l.persistFunc != nil {
		go l.persist(event)
	}

	return nil
}

func (l *Logger) persist(event Event) {
	// Background context: the originating request may already be gone, and a
	// started audit write must run to completion.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := l.persistFunc(ctx, event)
	if err != nil {
		// One retry, then it becomes a monitoring gap, not a failure.
		if err = l.persistFunc(ctx, event); err != nil {
			l.zapLogger.Warn("audit write failed", zap.Error(err), zap.String("event", string(event.Event)))
		}
	}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
