package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// APIResponse is the uniform envelope wrapping every operation result.
// Callers branch on the Success flag. We use the omitempty flag on the
// `total` field. This helps set the value for `GetAllBooks` calls only.
type APIResponse struct {
	RequestID string      `json:"requestid"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Total     *int        `json:"total,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func NewAPIError(requestid string, message string, data interface{}) *APIResponse {
	return &APIResponse{
		RequestID: requestid,
		Success:   false,
		Message:   message,
		Data:      data,
	}
}

func GenericResponse(requestid string, message string, total *int, data interface{}) *APIResponse {
	return &APIResponse{
		RequestID: requestid,
		Success:   true,
		Message:   message,
		Total:     total,
		Data:      data,
	}
}

// WriteErrorResponse is used to send a failure envelope to the client. In case the
// client closes the request, it answers with the Nginx non standard status code 499
// (Client Closed Request). In case of request processing timeout we set the status
// code to 504 which will be used to log the stats.
func WriteErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errResp *APIResponse) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			w.WriteHeader(http.StatusGatewayTimeout)
		} else {
			w.WriteHeader(499)
		}
		return ctx.Err()
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(errResp)
}

// WriteResponse is used to send a success envelope to the client. It sets the status
// code to 499 in case the client cancelled the request, and to 504 if the request
// processing timed out.
func WriteResponse(ctx context.Context, w http.ResponseWriter, status int, resp *APIResponse) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			w.WriteHeader(http.StatusGatewayTimeout)
		} else {
			w.WriteHeader(499)
		}
		return ctx.Err()
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(resp)
}

// StatusResponse is the data model sent when status endpoint is called.
type StatusResponse struct {
	RequestID string `json:"requestid"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}
