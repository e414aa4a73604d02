package conversion

import (
	"context"
	"errors"
	"math"

	"rubconv/internal/adapters"
	"rubconv/internal/adapters/cbr"
	"rubconv/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Result struct {
	RequestedCurrency string  `json:"requested currency"`
	ResultCurrency    string  `json:"result currency"`
	ExchangeRate      float64 `json:"exchange rate"`
	RequestedValue    float64 `json:"requested value"`
	ResultValue       float64 `json:"result value"`
}

// NewResult builds a USD→RUB result; ResultValue is rate*usd rounded to 2 places.
func NewResult(rate, usd float64) Result {
	value, _ := decimal.NewFromFloat(rate).Mul(decimal.NewFromFloat(usd)).Round(2).Float64()
	return Result{
		RequestedCurrency: "usd",
		ResultCurrency:    "rub",
		ExchangeRate:      rate,
		RequestedValue:    usd,
		ResultValue:       value,
	}
}

type Service struct {
	client adapters.RateClient
	log    logrus.FieldLogger
}

// Convert fetches the current rate and converts usd. Any fetch failure is
// reported as domain.ErrRateUnavailable, a result beyond float64 as ErrOutOfRange.
func (s *Service) Convert(ctx context.Context, usd float64) (Result, error) {
	rate, err := s.client.GetUSDRate(ctx)
	if err != nil {
		var statusErr *cbr.StatusError
		if errors.As(err, &statusErr) {
			s.log.WithField("status_code", statusErr.StatusCode).Warn("Exchange rate service answered with unexpected status")
		} else {
			s.log.WithError(err).Error("Exchange rate service request failed")
		}
		return Result{}, domain.ErrRateUnavailable
	}
	res := NewResult(rate, usd)
	if math.IsInf(res.ResultValue, 0) || math.IsNaN(res.ResultValue) {
		return Result{}, ErrOutOfRange
	}
	return res, nil
}

func NewService(client adapters.RateClient, log logrus.FieldLogger) *Service {
	return &Service{client: client, log: log}
}
