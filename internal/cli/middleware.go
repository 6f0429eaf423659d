// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/ctxutil"
	"github.com/taibuivan/bookrec/pkg/uuid"
)

// Action is one menu entry bound to its services.
type Action func(ctx context.Context) error

// Middleware decorates the action registered under name.
type Middleware func(name string, next Action) Action

// chain applies middlewares so that the first one is the outermost.
func chain(name string, action Action, middlewares ...Middleware) Action {
	for i := len(middlewares) - 1; i >= 0; i-- {
		action = middlewares[i](name, action)
	}
	return action
}

// # Action Tracing

// Trace attaches a time-sortable action ID to the context.
func Trace() Middleware {
	return func(_ string, next Action) Action {
		return func(ctx context.Context) error {
			return next(ctxutil.WithRequestID(ctx, uuid.New()))
		}
	}
}

// # Activity Logging

// StructuredLogger injects an action-scoped logger and logs how the action ended.
func StructuredLogger(logger *slog.Logger) Middleware {
	return func(name string, next Action) Action {
		return func(ctx context.Context) error {
			startTime := time.Now()

			actionLogger := logger.With(
				slog.String(constants.FieldAction, name),
				slog.String(constants.FieldActionID, ctxutil.GetRequestID(ctx)),
			)
			ctx = ctxutil.WithLogger(ctx, actionLogger)

			err := next(ctx)

			level := slog.LevelDebug
			attrs := []any{slog.Int64("latency_ms", time.Since(startTime).Milliseconds())}
			if err != nil && !errors.Is(err, io.EOF) {
				level = slog.LevelError
				attrs = append(attrs, slog.Any(constants.FieldError, err))
			}
			actionLogger.Log(ctx, level, "action_finished", attrs...)
			return err
		}
	}
}

// # Reliability & Safety

// PanicRecovery turns a panic inside an action into an error so the menu keeps running.
func PanicRecovery() Middleware {
	return func(name string, next Action) Action {
		return func(ctx context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stackTrace := make([]byte, 2048)
					length := runtime.Stack(stackTrace, false)

					ctxutil.GetLogger(ctx).ErrorContext(ctx, "panic_recovered",
						slog.Any(constants.FieldError, r),
						slog.String("stack", string(stackTrace[:length])),
					)
					err = apperr.Internal(fmt.Errorf("action %s panicked: %v", name, r))
				}
			}()
			return next(ctx)
		}
	}
}
