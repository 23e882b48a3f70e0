package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	ActionInitiatePayment = "initiatePayment"
	ActionGetOrderStatus  = "getOrderStatus"

	GatewayActionPaymentPage = "paymentPage"
)

// PaymentRequest is the body accepted by the relay endpoint. Which fields matter depends on Action.
// Identity fields stay raw so callers may send them as strings or numbers; read them with Value.
type PaymentRequest struct {
	Action        string          `json:"action"`
	Amount        json.RawMessage `json:"amount,omitempty"`
	OrderID       json.RawMessage `json:"order_id,omitempty"`
	CustomerID    json.RawMessage `json:"customer_id,omitempty"`
	CustomerEmail json.RawMessage `json:"customer_email,omitempty"`
	CustomerPhone json.RawMessage `json:"customer_phone,omitempty"`
	FirstName     json.RawMessage `json:"first_name,omitempty"`
	LastName      json.RawMessage `json:"last_name,omitempty"`
}

func (r *PaymentRequest) Sanitize() {
	r.Action = strings.TrimSpace(r.Action)
}

// HasOrderLookup reports whether both order_id and customer_id are truthy.
func (r *PaymentRequest) HasOrderLookup() bool {
	return !IsFalsy(r.OrderID) && !IsFalsy(r.CustomerID)
}

// HasAmount reports whether the amount is present and truthy. null, false, 0, "", "0" and empty containers count as missing.
func (r *PaymentRequest) HasAmount() bool {
	return !IsFalsy(r.Amount)
}

// PaymentInitiationPayload is the body posted to the payment gateway.
type PaymentInitiationPayload struct {
	OrderID             string          `json:"order_id"`
	Amount              json.RawMessage `json:"amount"`
	Currency            string          `json:"currency"`
	Action              string          `json:"action"`
	PaymentPageClientID string          `json:"payment_page_client_id"`
	ReturnURL           string          `json:"return_url"`
	CustomerID          string          `json:"customer_id"`
	CustomerEmail       string          `json:"customer_email"`
	CustomerPhone       string          `json:"customer_phone"`
	Description         string          `json:"description"`
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
}

type PaymentLinks struct {
	Web    json.RawMessage `json:"web"`
	Expiry json.RawMessage `json:"expiry"`
}

// InitiationResponse is the part of the gateway session response the relay looks at.
type InitiationResponse struct {
	PaymentLinks *PaymentLinks `json:"payment_links"`
}

// PaymentURL returns the web link and its expiry when the gateway sent one.
func (r *InitiationResponse) PaymentURL() (link, expiry string, ok bool) {
	if r == nil || r.PaymentLinks == nil || !IsPresent(r.PaymentLinks.Web) {
		return "", "", false
	}
	return Text(r.PaymentLinks.Web), Text(r.PaymentLinks.Expiry), true
}

// OrderStatusResponse is the part of the order status response the relay looks at.
type OrderStatusResponse struct {
	PaymentLinks  json.RawMessage `json:"payment_links"`
	Amount        json.RawMessage `json:"amount"`
	OrderID       json.RawMessage `json:"order_id"`
	CustomerID    json.RawMessage `json:"customer_id"`
	CustomerEmail json.RawMessage `json:"customer_email"`
	CustomerPhone json.RawMessage `json:"customer_phone"`
}

func (r *OrderStatusResponse) HasPaymentLinks() bool {
	return r != nil && IsPresent(r.PaymentLinks)
}

// RelayResult is a successful upstream answer, relayed to the caller byte for byte.
type RelayResult struct {
	StatusCode int
	Body       []byte
}

// IsPresent reports whether a raw JSON value was sent and is not null.
func IsPresent(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}

// IsFalsy applies loose truthiness to a raw JSON value.
func IsFalsy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if !IsPresent(v) {
		return true
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return true
		}
		return s == "" || s == "0"
	case 'f':
		return true
	case 't':
		return false
	case '[', '{':
		var container []any
		if v[0] == '[' {
			if err := json.Unmarshal(v, &container); err != nil {
				return true
			}
			return len(container) == 0
		}
		var object map[string]any
		if err := json.Unmarshal(v, &object); err != nil {
			return true
		}
		return len(object) == 0
	}
	n, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return true
	}
	return n == 0
}

// Value renders a raw request field as trimmed text, so 12345 and "12345" read the same.
func Value(raw json.RawMessage) string {
	return strings.TrimSpace(Text(raw))
}

// Text renders a raw JSON scalar for a human readable message. Strings lose their quotes and null becomes empty.
func Text(raw json.RawMessage) string {
	v := bytes.TrimSpace(raw)
	if !IsPresent(v) {
		return ""
	}
	switch {
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	case bytes.Equal(v, []byte("true")):
		return "1"
	case bytes.Equal(v, []byte("false")):
		return ""
	}
	return string(v)
}
