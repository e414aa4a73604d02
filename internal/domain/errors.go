package domain

import "errors"

var (
	ErrRateUnavailable = errors.New("exchange rate service is not available")
)
