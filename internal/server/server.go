// Package server exposes the valuation engine and ticker search over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/iwvelando/dcf-valuation/internal/ticker"
	"github.com/iwvelando/dcf-valuation/internal/valuation"
	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"go.uber.org/zap"
)

// Error codes returned in the error envelope.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeModelDivergence  = "MODEL_DIVERGENCE"
	CodeNumericOverflow  = "NUMERIC_OVERFLOW"
	CodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	CodeUpstreamError    = "UPSTREAM_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)

// TickerService is the lookup behind the suggestion and resolution routes.
type TickerService interface {
	Suggest(ctx context.Context, query string) ([]ticker.Suggestion, error)
	ResolveSymbol(ctx context.Context, query string) (string, error)
}

// Options configures NewHandler. Zero values select defaults; a nil Tickers
// disables the ticker routes.
type Options struct {
	MaxBodySize    int64
	Version        string
	AllowedOrigins []string
	Engine         *valuation.Engine
	Tickers        TickerService
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	engine      *valuation.Engine
	tickers     TickerService
}

// NewHandler constructs the HTTP handler that serves the valuation and ticker API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	engine := opts.Engine
	if engine == nil {
		engine = valuation.NewEngine(logger)
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		engine:      engine,
		tickers:     opts.Tickers,
	}

	mux := http.NewServeMux()

	// Valuation endpoints; /calculate is kept for older clients
	mux.HandleFunc("/calculate", h.handleCalculate)
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Ticker lookup endpoints
	mux.HandleFunc("/api/suggest/{query}", h.handleSuggest)
	mux.HandleFunc("/api/resolve/{query}", h.handleResolve)

	// Metadata
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/{$}", h.handleRoot)
	mux.HandleFunc("/", h.handleNotFound)

	var wrapped http.Handler = mux
	wrapped = corsMiddleware(opts.AllowedOrigins)(wrapped)
	wrapped = loggingMiddleware(logger)(wrapped)
	return requestIDMiddleware(wrapped)
}

type apiError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if !h.allowMethod(w, r, http.MethodPost, op) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)

	var raw valuation.RawInput
	if err := dec.Decode(&raw); err != nil {
		h.respondDecodeError(w, r, err, op)
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, CodeInvalidRequest,
			"request body must contain a single JSON object", nil, op)
		return
	}

	result, err := h.engine.Calculate(raw)
	if err != nil {
		var verr *valuation.ValidationError
		var derr *valuation.ModelDivergenceError
		switch {
		case errors.As(err, &verr):
			h.respondErrorWithOp(w, r, http.StatusBadRequest, CodeInvalidInput, verr.Error(),
				map[string]any{"field": verr.Field, "reason": verr.Reason}, op)
		case errors.As(err, &derr):
			h.respondErrorWithOp(w, r, http.StatusUnprocessableEntity, CodeModelDivergence, derr.Error(),
				map[string]any{"wacc": derr.WACC, "terminal_growth_rate": derr.TerminalGrowthRate}, op)
		default:
			h.respondErrorWithOp(w, r, http.StatusInternalServerError, CodeInternal,
				fmt.Sprintf("failed to compute valuation: %v", err), nil, op)
		}
		return
	}

	if !result.Finite() {
		h.respondErrorWithOp(w, r, http.StatusUnprocessableEntity, CodeNumericOverflow,
			"valuation overflowed the range of representable numbers; check the magnitude of the inputs", nil, op)
		return
	}

	h.logger.Info("valuation computed",
		zap.String("op", op),
		zap.String("requestID", RequestIDFromContext(r.Context())),
		zap.Float64("wacc", result.WACC),
		zap.Float64("sharePrice", result.SharePrice),
		zap.Int("warnings", len(result.Warnings)),
	)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) respondDecodeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &maxBytesErr):
		h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge, CodeRequestTooLarge,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), nil, op)
	case errors.As(err, &typeErr):
		h.respondErrorWithOp(w, r, http.StatusBadRequest, CodeInvalidRequest,
			fmt.Sprintf("field %s must be a %s", typeErr.Field, typeErr.Type), map[string]any{"field": typeErr.Field}, op)
	case errors.As(err, &syntaxErr):
		h.respondErrorWithOp(w, r, http.StatusBadRequest, CodeInvalidRequest,
			fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset), nil, op)
	case errors.Is(err, io.EOF):
		h.respondErrorWithOp(w, r, http.StatusBadRequest, CodeInvalidRequest, "request body is empty", nil, op)
	default:
		h.respondErrorWithOp(w, r, http.StatusBadRequest, CodeInvalidRequest,
			fmt.Sprintf("failed to decode request: %v", err), nil, op)
	}
}

func (h *handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSuggest"
	if !h.allowMethod(w, r, http.MethodGet, op) {
		return
	}
	if h.tickers == nil {
		h.respondErrorWithOp(w, r, http.StatusNotFound, CodeNotFound, "ticker search is not enabled", nil, op)
		return
	}

	suggestions, err := h.tickers.Suggest(r.Context(), r.PathValue("query"))
	if err != nil {
		h.respondUpstreamError(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, suggestions)
}

func (h *handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleResolve"
	if !h.allowMethod(w, r, http.MethodGet, op) {
		return
	}
	if h.tickers == nil {
		h.respondErrorWithOp(w, r, http.StatusNotFound, CodeNotFound, "ticker search is not enabled", nil, op)
		return
	}

	query := r.PathValue("query")
	symbol, err := h.tickers.ResolveSymbol(r.Context(), query)
	if err != nil {
		if errors.Is(err, ticker.ErrNotFound) {
			h.respondErrorWithOp(w, r, http.StatusNotFound, CodeNotFound,
				fmt.Sprintf("no listed symbol matches %q", query), map[string]any{"query": query}, op)
			return
		}
		h.respondUpstreamError(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"query": query, "symbol": symbol})
}

func (h *handler) respondUpstreamError(w http.ResponseWriter, r *http.Request, err error, op string) {
	details := map[string]any{}
	var perr *ticker.ProviderError
	if errors.As(err, &perr) {
		details["upstream_status"] = perr.StatusCode
		details["upstream_code"] = perr.Code
		if perr.RetryAfter != "" {
			details["retry_after"] = perr.RetryAfter
		}
	}
	h.respondErrorWithOp(w, r, http.StatusBadGateway, CodeUpstreamError, err.Error(), details, op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet, "server.handleVersion") {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet, "server.handleHealth") {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet, "server.handleRoot") {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "dcf-valuation backend is running"})
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, r, http.StatusNotFound, CodeNotFound,
		fmt.Sprintf("no route for %s", r.URL.Path), nil, "server.handleNotFound")
}

// allowMethod writes a 405 and returns false unless r uses method. HEAD is
// accepted wherever GET is.
func (h *handler) allowMethod(w http.ResponseWriter, r *http.Request, method, op string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	h.respondErrorWithOp(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed,
		fmt.Sprintf("method %s is not allowed, use %s", r.Method, method), nil, op)
	return false
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, code, msg string, details map[string]any, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("requestID", RequestIDFromContext(r.Context())),
		zap.Int("status", status),
		zap.String("code", code),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}

	h.writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: msg, Details: details}})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
