package api

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediswift/internal/state"
	"mediswift/internal/store"
	"mediswift/internal/types"
)

func newTestMock(t *testing.T) (*Mock, *state.App) {
	t.Helper()
	s, err := store.NewLocalStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	app := state.New(s)
	require.NoError(t, app.Load())
	return NewInstantMock(app), app
}

func TestFetchCatalogReturnsSeededProducts(t *testing.T) {
	m, app := newTestMock(t)
	products, err := m.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(app.Products), len(products))
	assert.NotEmpty(t, products)
}

func TestAuthenticateByEmailAndPhone(t *testing.T) {
	m, _ := newTestMock(t)

	byEmail, err := m.Authenticate(context.Background(), "admin@mediswift.in", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", byEmail.Name)

	byPhone, err := m.Authenticate(context.Background(), "9876543210", "admin123")
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, byPhone.ID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	m, _ := newTestMock(t)

	_, err := m.Authenticate(context.Background(), "admin@mediswift.in", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.Authenticate(context.Background(), "nobody@example.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterCreatesUserWithWalletBonus(t *testing.T) {
	m, app := newTestMock(t)

	user, err := m.Register(context.Background(), Registration{
		Name: "Asha Sen", Age: 34, Phone: "9830012345",
		Email: "asha@example.com", Address: "Park Street", Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, float64(500), user.WalletBalance)
	assert.Len(t, app.Users, 2)
}

func TestRegisterRejectsDuplicateEmailOrPhone(t *testing.T) {
	m, _ := newTestMock(t)

	_, err := m.Register(context.Background(), Registration{
		Name: "Dup", Email: "admin@mediswift.in", Phone: "1112223334", Password: "x",
	})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = m.Register(context.Background(), Registration{
		Name: "Dup", Email: "new@example.com", Phone: "9876543210", Password: "x",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestPlaceOrderStampsServerFields(t *testing.T) {
	m, app := newTestMock(t)
	fixed := time.Date(2025, 11, 16, 10, 30, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	order, err := m.PlaceOrder(context.Background(), OrderDraft{
		UserID:        "1",
		Items:         []types.OrderItem{{ID: "m1", Name: "Paracetamol", Price: 25, Quantity: 2}},
		Total:         205.375,
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "ORD"), "order id %q", order.ID)
	assert.Equal(t, types.StatusConfirmed, order.Status)
	assert.Equal(t, "SUCCESS", order.PaymentStatus)
	assert.Equal(t, "2-3 business days", order.DeliveryEstimate)
	assert.Equal(t, fixed, order.Date)
	assert.Len(t, app.Orders, 1)
}

func TestSendOTPReturnsDemoCode(t *testing.T) {
	m, _ := newTestMock(t)
	code, err := m.SendOTP(context.Background(), "9830012345")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
}

func TestProcessPaymentDefaultSucceeds(t *testing.T) {
	m, _ := newTestMock(t)
	assert.NoError(t, m.ProcessPayment(context.Background()))
}

func TestProcessPaymentHonorsOutcome(t *testing.T) {
	m, _ := newTestMock(t)
	m.PaymentOutcome = func() error { return ErrPaymentFailed }
	assert.ErrorIs(t, m.ProcessPayment(context.Background()), ErrPaymentFailed)
}

func TestCancelledContextAbortsCall(t *testing.T) {
	m, _ := newTestMock(t)
	m.sleep = sleepCtx
	m.cfg.CatalogLatencyMs = 5000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.FetchCatalog(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
