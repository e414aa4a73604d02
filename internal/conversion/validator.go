package conversion

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
)

var (
	ErrNotJSON      = errors.New("request parameters not in JSON format")
	ErrIncorrectKey = errors.New("usd key is missing")
	ErrNotNumeric   = errors.New("usd value is not a number")
	ErrOutOfRange   = errors.New("usd value is out of range")
)

type Request struct {
	USD float64
}

// ParseRequest decodes a conversion request body. Only a JSON object with a
// numeric "usd" member is accepted; numeric strings are not coerced.
func ParseRequest(body []byte) (Request, error) {
	if !json.Valid(body) {
		return Request{}, ErrNotJSON
	}

	// Numbers stay json.Number so an out-of-range literal is still valid JSON.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return Request{}, ErrNotJSON
	}

	params, ok := payload.(map[string]any)
	if !ok {
		return Request{}, ErrIncorrectKey
	}
	raw, ok := params["usd"]
	if !ok {
		return Request{}, ErrIncorrectKey
	}
	number, ok := raw.(json.Number)
	if !ok {
		return Request{}, ErrNotNumeric
	}
	usd, err := number.Float64()
	if err != nil || math.IsInf(usd, 0) {
		return Request{}, ErrOutOfRange
	}

	return Request{USD: usd}, nil
}

// CodeFor maps an error from ParseRequest or Service.Convert to its catalog code.
func CodeFor(err error) Code {
	switch {
	case errors.Is(err, ErrNotJSON):
		return CodeMalformedJSON
	case errors.Is(err, ErrIncorrectKey):
		return CodeIncorrectKey
	case errors.Is(err, ErrNotNumeric), errors.Is(err, ErrOutOfRange):
		return CodeIncorrectValue
	default: // domain.ErrRateUnavailable and anything unexpected
		return CodeServiceUnavailable
	}
}
