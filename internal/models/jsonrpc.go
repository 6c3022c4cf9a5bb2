package models

import "encoding/json"

// JSONRPCRequest represents a JSON-RPC 2.0 request object.
type JSONRPCRequest struct {
	// JSONRPC specifies the protocol version, must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is a unique identifier established by the client. It can be a
	// string or a number and is echoed back in the response. Omitted for
	// notifications.
	ID interface{} `json:"id"`
	// Method is the name of the method to be invoked.
	Method string `json:"method"`
	// Params holds the parameter values for the invocation. Parsing is
	// deferred until the method is known.
	Params json.RawMessage `json:"params"`
}

// JSONRPCErrorData carries application-specific context inside a JSON-RPC
// error object.
type JSONRPCErrorData struct {
	// FilePath is the path of the file involved in the error, if applicable.
	FilePath string `json:"file_path,omitempty"`
	// Operation is the operation being performed when the error occurred.
	Operation string `json:"operation,omitempty"`
	// Timestamp records when the error occurred.
	Timestamp string `json:"timestamp,omitempty"`
	// Details provides any other specific details about the error.
	Details string `json:"details,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	// Code indicates the error type. Predefined JSON-RPC codes are used
	// where they apply, application-specific codes otherwise.
	Code int `json:"code"`
	// Message is a short description of the error.
	Message string `json:"message"`
	// Data contains additional information about the error. May be omitted.
	Data *JSONRPCErrorData `json:"data,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response object.
type JSONRPCResponse struct {
	// JSONRPC specifies the protocol version, must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID matches the ID of the request this response answers.
	ID interface{} `json:"id"`
	// Result contains the method result. Present only on success.
	Result interface{} `json:"result,omitempty"`
	// Error contains the error object. Present only on failure.
	Error *JSONRPCError `json:"error,omitempty"`
}
