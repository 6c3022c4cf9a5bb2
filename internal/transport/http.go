package transport

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"text-editor-server/internal/errors"
	"text-editor-server/internal/log"
	"text-editor-server/internal/models"
)

const (
	defaultReadTimeout      = 60 * time.Second
	defaultWriteTimeout     = 60 * time.Second
	defaultMaxRequestSizeMB = 50
)

// HTTPHandler exposes every dispatcher method as a POST endpoint plus a
// GET /health probe.
type HTTPHandler struct {
	dispatcher *Dispatcher
	logger     log.Logger
	maxReqSize int64
	server     *http.Server
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(dispatcher *Dispatcher, logger log.Logger) *HTTPHandler {
	return &HTTPHandler{
		dispatcher: dispatcher,
		logger:     logger,
		maxReqSize: int64(defaultMaxRequestSizeMB) * 1024 * 1024,
		server:     &http.Server{},
	}
}

// RegisterRoutes installs one route per dispatcher method, named after the
// method.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	for _, name := range h.dispatcher.Methods() {
		method := name
		mux.HandleFunc("/"+method, func(w http.ResponseWriter, r *http.Request) {
			h.handleMethod(w, r, method)
		})
	}
	mux.HandleFunc("/health", h.handleHealthCheck)
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error("failed to encode response", "error", err)
		}
	}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, statusCode int, errDetail *models.ErrorDetail) {
	if errDetail == nil {
		errDetail = errors.NewInternalError("An unexpected error occurred and error details were lost.")
		statusCode = http.StatusInternalServerError
	}
	h.writeJSON(w, statusCode, models.ErrorResponse{Error: *errDetail})
}

func (h *HTTPHandler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) handleMethod(w http.ResponseWriter, r *http.Request, method string) {
	if r.Method != http.MethodPost {
		errDetail := errors.NewInvalidRequestError(fmt.Sprintf("Method %s not allowed for /%s. Use POST.", r.Method, method))
		h.writeError(w, http.StatusMethodNotAllowed, errDetail)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		errDetail := errors.NewInvalidRequestError("Invalid Content-Type header. Must be 'application/json'.")
		h.writeError(w, http.StatusUnsupportedMediaType, errDetail)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxReqSize)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stdErrors.As(err, &maxBytesErr) {
			errDetail := errors.NewInvalidRequestError(fmt.Sprintf("Request body exceeds maximum size of %dMB.", defaultMaxRequestSizeMB))
			h.writeError(w, http.StatusRequestEntityTooLarge, errDetail)
			return
		}
		h.writeError(w, http.StatusBadRequest, errors.NewParseError(fmt.Sprintf("Failed to read request body: %v", err)))
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		h.writeError(w, http.StatusBadRequest, errors.NewParseError("Request body is not valid JSON."))
		return
	}

	result, errDetail := h.dispatcher.Dispatch(method, body)
	if errDetail != nil {
		h.writeError(w, errors.MapErrorToHTTPStatus(errDetail.Code, errDetail), errDetail)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// StartServer runs the HTTP server until it fails or is shut down.
func (h *HTTPHandler) StartServer(port int) error {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	h.server.Addr = fmt.Sprintf(":%d", port)
	h.server.Handler = mux
	h.server.ReadTimeout = defaultReadTimeout
	h.server.WriteTimeout = defaultWriteTimeout

	h.logger.Info("http transport started", "port", port)
	err := h.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		h.logger.Error("http server error", "error", err)
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (h *HTTPHandler) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}
