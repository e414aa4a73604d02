package adapters

import "context"

type RateClient interface {
	GetUSDRate(ctx context.Context) (float64, error)
}
