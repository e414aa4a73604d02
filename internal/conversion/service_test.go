package conversion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"rubconv/internal/adapters/cbr"
	"rubconv/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) GetUSDRate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	rate, _ := args.Get(0).(float64)
	return rate, args.Error(1)
}

func TestNewResult_Rounding(t *testing.T) {
	cases := []struct {
		rate, usd, want float64
	}{
		{rate: 66.4437, usd: 300, want: 19933.11},
		{rate: 66.4437, usd: 1, want: 66.44},
		{rate: 66.4437, usd: 0.5, want: 33.22},
		{rate: 64.0881, usd: 12.34, want: 790.85},
		{rate: 1.005, usd: 1, want: 1.01},
		{rate: 66.4437, usd: 0, want: 0},
		{rate: 66.4437, usd: -10, want: -664.44},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v*%v", tc.rate, tc.usd), func(t *testing.T) {
			r := NewResult(tc.rate, tc.usd)
			require.Equal(t, tc.want, r.ResultValue)
			require.Equal(t, tc.rate, r.ExchangeRate)
			require.Equal(t, tc.usd, r.RequestedValue)
			require.Equal(t, "usd", r.RequestedCurrency)
			require.Equal(t, "rub", r.ResultCurrency)
		})
	}
}

func TestResult_JSON(t *testing.T) {
	got, err := json.Marshal(NewResult(66.4437, 300))
	require.NoError(t, err)
	require.JSONEq(t,
		`{"requested currency":"usd","result currency":"rub","exchange rate":66.4437,"requested value":300,"result value":19933.11}`,
		string(got))
}

func TestService_Convert_Success(t *testing.T) {
	client := new(MockRateClient)
	logger, hook := test.NewNullLogger()
	svc := NewService(client, logger)

	client.On("GetUSDRate", mock.Anything).Return(66.4437, nil).Once()

	res, err := svc.Convert(context.Background(), 300)
	require.NoError(t, err)
	require.Equal(t, NewResult(66.4437, 300), res)
	require.Empty(t, hook.AllEntries())
	client.AssertExpectations(t)
}

func TestService_Convert_FetchesEveryTime(t *testing.T) {
	client := new(MockRateClient)
	logger, _ := test.NewNullLogger()
	svc := NewService(client, logger)

	client.On("GetUSDRate", mock.Anything).Return(66.4437, nil).Once()
	client.On("GetUSDRate", mock.Anything).Return(70.0, nil).Once()

	first, err := svc.Convert(context.Background(), 300)
	require.NoError(t, err)
	second, err := svc.Convert(context.Background(), 300)
	require.NoError(t, err)

	require.Equal(t, 19933.11, first.ResultValue)
	require.Equal(t, 21000.0, second.ResultValue)
	client.AssertNumberOfCalls(t, "GetUSDRate", 2)
}

func TestService_Convert_StatusErrorLogsWarning(t *testing.T) {
	client := new(MockRateClient)
	logger, hook := test.NewNullLogger()
	svc := NewService(client, logger)

	statusErr := &cbr.StatusError{StatusCode: http.StatusBadGateway, Status: "502 Bad Gateway"}
	client.On("GetUSDRate", mock.Anything).Return(0.0, fmt.Errorf("wrapped: %w", statusErr)).Once()

	_, err := svc.Convert(context.Background(), 300)
	require.ErrorIs(t, err, domain.ErrRateUnavailable)

	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Equal(t, http.StatusBadGateway, hook.LastEntry().Data["status_code"])
	client.AssertExpectations(t)
}

func TestService_Convert_TransportErrorLogsError(t *testing.T) {
	client := new(MockRateClient)
	logger, hook := test.NewNullLogger()
	svc := NewService(client, logger)

	client.On("GetUSDRate", mock.Anything).Return(0.0, errors.New("dial tcp: no such host")).Once()

	_, err := svc.Convert(context.Background(), 300)
	require.ErrorIs(t, err, domain.ErrRateUnavailable)

	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.EqualError(t, hook.LastEntry().Data[logrus.ErrorKey].(error), "dial tcp: no such host")
	client.AssertExpectations(t)
}

func TestService_Convert_ResultOverflow(t *testing.T) {
	client := new(MockRateClient)
	logger, _ := test.NewNullLogger()
	svc := NewService(client, logger)

	client.On("GetUSDRate", mock.Anything).Return(66.4437, nil).Once()

	res, err := svc.Convert(context.Background(), 1.7e308)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Equal(t, Result{}, res)
	require.Equal(t, CodeIncorrectValue, CodeFor(err))
	client.AssertExpectations(t)
}
