package models

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	MsgActionRequired         = "Action parameter is required"
	MsgAmountRequired         = "Amount is required"
	MsgOrderStatusInput       = "Order ID and Customer ID are required"
	MsgInitiatePaymentFailed  = "Failed to initiate payment"
	MsgOrderStatusFailed      = "Failed to fetch order status"
	MsgPaymentLinkNotFound    = "Payment link not found in the response"
	MsgOrderStatusLinkMissing = "Payment links missing from order status response"
)

// RelayError is a failure that ends a relay request. Status and Message go to the caller as-is.
// Response, when set, carries the parsed upstream body and is always written, even as null.
type RelayError struct {
	Status   int
	Message  string
	Response json.RawMessage
	Err      error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

func NewBadRequest(message string) *RelayError {
	return &RelayError{Status: http.StatusBadRequest, Message: message}
}

func NewUnknownAction(action string) *RelayError {
	return NewBadRequest(fmt.Sprintf("Unknown action: %s", action))
}

func NewTransportError(err error) *RelayError {
	return &RelayError{
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Transport error: %v", err),
		Err:     err,
	}
}

// NewUpstreamError relays a non-200 gateway answer with its body decoded, or null when it is not JSON.
func NewUpstreamError(status int, message string, body []byte) *RelayError {
	return &RelayError{
		Status:   status,
		Message:  message,
		Response: UpstreamBody(body),
	}
}

func NewMissingField(message string) *RelayError {
	return &RelayError{Status: http.StatusInternalServerError, Message: message}
}

// UpstreamBody returns body when it is valid JSON and a JSON null otherwise.
func UpstreamBody(body []byte) json.RawMessage {
	if len(body) == 0 || !json.Valid(body) {
		return json.RawMessage("null")
	}
	return json.RawMessage(body)
}
