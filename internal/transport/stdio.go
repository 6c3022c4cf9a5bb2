package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"text-editor-server/internal/errors"
	"text-editor-server/internal/log"
	"text-editor-server/internal/models"
)

// Lines longer than this abort the scanner, so it bounds a single request.
const maxRequestLineBytes = 10 * 1024 * 1024

// StdioHandler handles JSON-RPC 2.0 communication over newline-delimited
// messages on standard input/output.
type StdioHandler struct {
	dispatcher *Dispatcher
	logger     log.Logger
}

// NewStdioHandler creates a new StdioHandler.
func NewStdioHandler(dispatcher *Dispatcher, logger log.Logger) *StdioHandler {
	return &StdioHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *StdioHandler) writeResponse(writer io.Writer, response models.JSONRPCResponse) {
	responseBytes, err := json.Marshal(response)
	if err != nil {
		// Replace the unmarshalable response with a bare internal error
		// that keeps the request ID.
		h.logger.Error("failed to marshal response", "id", response.ID, "error", err)
		fallback := models.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      response.ID,
			Error:   errors.ToJSONRPCError(errors.NewInternalError("failed to marshal response")),
		}
		responseBytes, _ = json.Marshal(fallback)
	}
	if _, err := fmt.Fprintln(writer, string(responseBytes)); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// Start reads newline-delimited JSON-RPC requests from input until EOF,
// writing one response line per request.
func (h *StdioHandler) Start(input io.Reader, output io.Writer) error {
	h.logger.Info("stdio transport started")

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), maxRequestLineBytes)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(bytes.TrimSpace(lineBytes)) == 0 {
			continue
		}

		var jsonReq models.JSONRPCRequest
		if err := json.Unmarshal(lineBytes, &jsonReq); err != nil {
			errDetail := errors.NewParseError(fmt.Sprintf("Invalid JSON received: %v", err))
			h.writeResponse(output, models.JSONRPCResponse{
				JSONRPC: "2.0",
				Error:   errors.ToJSONRPCError(errDetail),
			})
			continue
		}

		response := models.JSONRPCResponse{JSONRPC: "2.0", ID: jsonReq.ID}

		if jsonReq.JSONRPC != "2.0" {
			response.Error = errors.ToJSONRPCError(errors.NewInvalidRequestError("Invalid JSON-RPC version. Must be '2.0'."))
			h.writeResponse(output, response)
			continue
		}
		if jsonReq.Method == "" {
			response.Error = errors.ToJSONRPCError(errors.NewInvalidRequestError("Method not specified."))
			h.writeResponse(output, response)
			continue
		}

		result, errDetail := h.dispatcher.Dispatch(jsonReq.Method, jsonReq.Params)
		if errDetail != nil {
			rpcError := errors.ToJSONRPCError(errDetail)
			if rpcError.Data == nil {
				rpcError.Data = &models.JSONRPCErrorData{}
			}
			rpcError.Data.Operation = jsonReq.Method
			if rpcError.Data.Timestamp == "" {
				rpcError.Data.Timestamp = time.Now().UTC().Format(time.RFC3339)
			}
			response.Error = rpcError
		} else {
			response.Result = result
		}
		h.writeResponse(output, response)
	}

	if err := scanner.Err(); err != nil {
		h.logger.Error("stdio transport read error", "error", err)
		return err
	}

	h.logger.Info("stdio transport finished")
	return nil
}
