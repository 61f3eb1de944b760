// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for reading form submissions. Bodies may be
// form-encoded (plain forms and HTMX) or JSON (API clients); both are read
// through the same parser so handlers never care which one arrived.

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cashchange/internal/core"
)

// maxBodyBytes bounds a submission body; two numbers never need more.
const maxBodyBytes = 16 << 10

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]interface{}
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body == nil {
		return p
	}
	p.body, p.err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := strings.TrimSpace(string(p.body))
	if trimmed == "" {
		p.formData = url.Values{}
		return nil
	}

	if trimmed[0] == '{' || strings.HasPrefix(p.contentType, "application/json") {
		p.jsonData = make(map[string]interface{})
		if err := json.Unmarshal([]byte(trimmed), &p.jsonData); err != nil {
			p.jsonData = nil
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(trimmed)
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// stringValue converts a decoded JSON value to string. Anything that is not
// a string or number becomes "" and later parses as NaN.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

// Submission is the raw bill and cash input of one form post.
type Submission struct {
	BillRaw string
	CashRaw string
}

// ParseSubmission reads the bill and cash fields from a parsed body.
func ParseSubmission(p *RequestBodyParser) Submission {
	return Submission{
		BillRaw: p.Get(core.FieldBillAmount),
		CashRaw: p.Get(core.FieldCashGiven),
	}
}

// Amounts converts the raw input; malformed values become NaN.
func (s Submission) Amounts() (bill, cash core.Amount) {
	return core.ParseAmount(s.BillRaw), core.ParseAmount(s.CashRaw)
}

// isHTMX reports whether the request was issued by htmx and expects a partial.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
