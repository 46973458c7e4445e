// pkg/cart_io/context.go

package cart_io

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries everything a command handler needs for one run.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Span       trace.Span
	Timestamp  time.Time
	Command    string
	Component  string
	TraceID    string
	Attributes map[string]string
}

// NewContext opens a span for cmdName and scopes the process logger to it.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	if parent == nil {
		parent = context.Background()
	}
	ctx, span := telemetry.Start(parent, cmdName, attribute.String("os", runtime.GOOS))

	traceID := logger.GenerateTraceID()
	if sc := span.SpanContext(); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}

	component := componentOf(cmdName)
	log := logger.L().With(
		zap.String("command", cmdName),
		zap.String("trace_id", traceID),
	).Named(component)

	return &RuntimeContext{
		Ctx:        ctx,
		Log:        log,
		Span:       span,
		Timestamp:  time.Now(),
		Command:    cmdName,
		Component:  component,
		TraceID:    traceID,
		Attributes: make(map[string]string),
	}
}

// Logger returns a context-aware logger that tags entries with the span.
func (rc *RuntimeContext) Logger() otelzap.LoggerWithCtx {
	return otelzap.New(rc.Log).Ctx(rc.Ctx)
}

// HandlePanic recovers panics, logs them, and converts to an error.
// It must be deferred directly.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("Panic recovered", zap.Any("panic", r), zap.Stack("stack"))
	}
}

// End logs the outcome, records it on the span, and ends the span.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)

	switch {
	case err == nil:
		rc.Log.Debug("Command completed", zap.Duration("duration", duration))
	case cart_err.IsExpectedUserError(err):
		rc.Log.Warn("Command finished with a notice", zap.Duration("duration", duration), zap.Error(err))
	default:
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(err))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("error_type", classifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)
	if err != nil && !cart_err.IsExpectedUserError(err) {
		rc.Span.RecordError(err)
		rc.Span.SetStatus(codes.Error, err.Error())
	}
}

func componentOf(cmdName string) string {
	fields := strings.Fields(cmdName)
	if len(fields) == 0 {
		return "cli"
	}
	return fields[len(fields)-1]
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if cart_err.IsExpectedUserError(err) {
		return "user"
	}
	return cart_err.CategoryOf(err).String()
}
