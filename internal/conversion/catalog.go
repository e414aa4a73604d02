package conversion

import "net/http"

type Code int

const (
	CodeMethodNotAllowed Code = iota
	CodeIncorrectContentType
	CodeMalformedJSON
	CodeIncorrectKey
	CodeIncorrectValue
	CodeServiceUnavailable
)

// ErrorEntry is a client-facing error. Status is informational unless strict status mode is on.
type ErrorEntry struct {
	Code    Code   `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

var catalog = [...]ErrorEntry{
	CodeMethodNotAllowed: {
		Code:    CodeMethodNotAllowed,
		Name:    "Method Not Allowed",
		Message: "GET method is not allowed",
		Status:  http.StatusMethodNotAllowed,
	},
	CodeIncorrectContentType: {
		Code:    CodeIncorrectContentType,
		Name:    "Not Acceptable",
		Message: "Incorrect Content-Type",
		Status:  http.StatusNotAcceptable,
	},
	CodeMalformedJSON: {
		Code:    CodeMalformedJSON,
		Name:    "Not Acceptable",
		Message: "Request parameters not in JSON format",
		Status:  http.StatusNotAcceptable,
	},
	CodeIncorrectKey: {
		Code:    CodeIncorrectKey,
		Name:    "Incorrect Parameters",
		Message: "Incorrect key in request parameters",
	},
	CodeIncorrectValue: {
		Code:    CodeIncorrectValue,
		Name:    "Incorrect Parameters",
		Message: "Incorrect value in request parameters",
	},
	CodeServiceUnavailable: {
		Code:    CodeServiceUnavailable,
		Name:    "Service Not Available",
		Message: "Service is not available",
		Status:  http.StatusServiceUnavailable,
	},
}

// Lookup returns a copy of the catalog entry for code. ok is false for unknown codes.
func Lookup(code Code) (ErrorEntry, bool) {
	if code < 0 || int(code) >= len(catalog) {
		return ErrorEntry{}, false
	}
	return catalog[code], true
}
