// pkg/clients/clienttest/mock.go
package clienttest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
)

// MockLedgerClient is a testify mock of clients.LedgerClient.
type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) Request(ctx context.Context, req models.Request) (*models.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.Response)
	return resp, args.Error(1)
}

func (m *MockLedgerClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// OnMethod expects a request for method, whatever its parameters.
func (m *MockLedgerClient) OnMethod(method string) *mock.Call {
	return m.On("Request", mock.Anything, Method(method))
}

// Method matches a models.Request by method name.
func Method(method string) any {
	return mock.MatchedBy(func(req models.Request) bool {
		return req.Method() == method
	})
}

// Success builds a successful response carrying result.
func Success(t testing.TB, result any) *models.Response {
	t.Helper()
	resp, err := models.NewResponse(models.ResponseStatusSuccess, result)
	require.NoError(t, err)
	return resp
}

// Failure builds a node error response.
func Failure(t testing.TB, code, message string) *models.Response {
	t.Helper()
	resp, err := models.NewResponse(models.ResponseStatusError, map[string]any{
		"status":        "error",
		"error":         code,
		"error_message": message,
	})
	require.NoError(t, err)
	return resp
}
