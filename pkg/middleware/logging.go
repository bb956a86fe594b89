package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/stock-analytics-api/pkg/log"
)

// Requisições acima deste tempo entram no log como lentas
const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra o início e o fim de cada requisição HTTP com um
// ID de correlação propagado pelo contexto
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			startedAt := time.Now()

			logRequestStart(r, correlationID)

			next.ServeHTTP(recorder, r)

			logRequestEnd(r, correlationID, recorder.status, time.Since(startedAt))
		})
	}
}

func logRequestStart(r *http.Request, correlationID string) {
	// Em desenvolvimento o log de entrada fica curto
	if log.IsDevelopment() {
		log.L.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Info("→ Iniciando requisição")
		return
	}

	log.L.WithFields(log.Fields{
		"correlation_id": correlationID,
		"remote_addr":    r.RemoteAddr,
		"method":         r.Method,
		"path":           r.URL.Path,
		"query":          r.URL.RawQuery,
		"user_agent":     r.UserAgent(),
		"content_type":   r.Header.Get("Content-Type"),
		"content_length": r.ContentLength,
	}).Info("Requisição iniciada")
}

func logRequestEnd(r *http.Request, correlationID string, status int, elapsed time.Duration) {
	if log.IsDevelopment() {
		symbol := "✓"
		if status >= 400 {
			symbol = "✗"
		}

		logger := log.L.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": status,
		})

		logByStatus(logger, status, fmt.Sprintf("%s Completada em %s", symbol, formatDuration(elapsed)))

		if elapsed > slowRequestThreshold {
			log.L.Warnf("⚠ Requisição lenta: %s %s (%dms)", r.Method, r.URL.Path, elapsed.Milliseconds())
		}
		return
	}

	fields := log.Fields{
		"correlation_id": correlationID,
		"method":         r.Method,
		"path":           r.URL.Path,
		"duration_ms":    elapsed.Milliseconds(),
		"status_code":    status,
	}

	logByStatus(log.L.WithFields(fields), status, "Requisição finalizada")

	if elapsed > slowRequestThreshold {
		log.L.WithFields(fields).Warnf("Requisição lenta: %s", elapsed)
	}
}

// logByStatus escolhe o nível do log pela classe do status HTTP
func logByStatus(logger log.Logger, status int, message string) {
	switch {
	case status >= 500:
		logger.Error(message)
	case status >= 400:
		logger.Warn(message)
	default:
		logger.Info(message)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// statusRecorder captura o status code escrito pelo handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware transforma panics em resposta 500 com o stack trace no log
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackSize := runtime.Stack(stack, false)
					logPanic(r, err, string(stack[:stackSize]))

					http.Error(w, "Erro interno no servidor", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func logPanic(r *http.Request, panicErr any, stackTrace string) {
	if log.IsDevelopment() {
		log.L.WithFields(log.Fields{
			"error": panicErr,
			"path":  r.URL.Path,
		}).Error("❌ PANIC na aplicação")

		// Em desenvolvimento o stack trace vai direto para o console
		fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
		return
	}

	logger := log.L.WithFields(log.Fields{
		"correlation_id": log.GetCorrelationID(r.Context()),
		"panic_error":    panicErr,
		"method":         r.Method,
		"path":           r.URL.Path,
	})

	logger.Error("Erro não tratado na aplicação")
	logger.WithField("stack_trace", stackTrace).Error("Stack trace do erro")
}
