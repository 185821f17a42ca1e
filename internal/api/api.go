// Package api is the mock remote service collaborator. Operations resolve
// after a configured delay, simulating network latency; there are no
// retries and no timeouts beyond what the caller's context imposes. The
// latency source and clock are injectable so tests run instantly.
package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mediswift/internal/config"
	"mediswift/internal/logging"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

// Error taxonomy for the mock backend. Callers match with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid email/phone or password")
	ErrUserExists         = errors.New("user with this email or phone already exists")
	ErrPaymentFailed      = errors.New("payment failed")
)

// Registration is the profile submitted by the register form.
type Registration struct {
	Name     string
	Age      int
	Phone    string
	Email    string
	Address  string
	Password string
}

// OrderDraft is the client-side order before the backend stamps it.
type OrderDraft struct {
	UserID               string
	Items                []types.OrderItem
	Total                float64
	PaymentMethod        string
	Address              types.Address
	PrescriptionRequired bool
	PrescriptionID       string
}

// Service is the asynchronous mock backend surface.
type Service interface {
	FetchCatalog(ctx context.Context) ([]types.Product, error)
	Authenticate(ctx context.Context, identifier, password string) (types.User, error)
	Register(ctx context.Context, reg Registration) (types.User, error)
	PlaceOrder(ctx context.Context, draft OrderDraft) (types.Order, error)
	SendOTP(ctx context.Context, phone string) (string, error)
	ProcessPayment(ctx context.Context) error
}

// Mock implements Service against the in-memory application state, the way
// the original storefront's fake backend read and wrote its globals.
type Mock struct {
	app *state.App
	cfg config.APIConfig

	// now and sleep are injection points for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// PaymentOutcome, when set, decides whether ProcessPayment succeeds.
	// The default always succeeds, like the original simulation.
	PaymentOutcome func() error
}

// NewMock builds the mock backend over the given application state.
func NewMock(app *state.App, cfg config.APIConfig) *Mock {
	return &Mock{
		app:   app,
		cfg:   cfg,
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// NewInstantMock builds a mock with zero latency, for tests.
func NewInstantMock(app *state.App) *Mock {
	m := NewMock(app, config.APIConfig{})
	m.sleep = func(context.Context, time.Duration) error { return nil }
	return m
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FetchCatalog returns the catalog snapshot after the configured delay.
func (m *Mock) FetchCatalog(ctx context.Context) ([]types.Product, error) {
	if err := m.sleep(ctx, m.cfg.CatalogLatency()); err != nil {
		return nil, err
	}
	logging.API("FetchCatalog: %d products", len(m.app.Products))
	return m.app.Products, nil
}

// Authenticate matches the identifier against email or phone and the
// password by plain comparison, exactly as the mock backend always has.
func (m *Mock) Authenticate(ctx context.Context, identifier, password string) (types.User, error) {
	if err := m.sleep(ctx, m.cfg.AuthLatency()); err != nil {
		return types.User{}, err
	}
	for _, u := range m.app.Users {
		if (u.Email == identifier || u.Phone == identifier) && u.Password == password {
			logging.API("Authenticate: success for %s", identifier)
			return u, nil
		}
	}
	logging.API("Authenticate: rejected %s", identifier)
	return types.User{}, ErrInvalidCredentials
}

// Register creates a new account unless the email or phone is taken. New
// accounts start with a wallet balance of 500.
func (m *Mock) Register(ctx context.Context, reg Registration) (types.User, error) {
	if err := m.sleep(ctx, m.cfg.AuthLatency()); err != nil {
		return types.User{}, err
	}
	for _, u := range m.app.Users {
		if u.Email == reg.Email || u.Phone == reg.Phone {
			return types.User{}, ErrUserExists
		}
	}
	user := types.User{
		ID:            fmt.Sprintf("%d", m.now().UnixMilli()),
		Name:          reg.Name,
		Age:           reg.Age,
		Phone:         reg.Phone,
		Email:         reg.Email,
		Address:       reg.Address,
		Password:      reg.Password,
		WalletBalance: 500,
		JoinedDate:    m.now(),
	}
	m.app.Users = append(m.app.Users, user)
	if err := m.app.SaveUsers(); err != nil {
		return types.User{}, err
	}
	logging.API("Register: created user %s", user.ID)
	return user, nil
}

// PlaceOrder stamps the draft with a server-assigned id, timestamp, the
// CONFIRMED status and a delivery estimate, appends it to the orders
// collection and persists it.
func (m *Mock) PlaceOrder(ctx context.Context, draft OrderDraft) (types.Order, error) {
	if err := m.sleep(ctx, m.cfg.OrderLatency()); err != nil {
		return types.Order{}, err
	}
	order := types.Order{
		ID:                   fmt.Sprintf("ORD%d", m.now().UnixMilli()),
		UserID:               draft.UserID,
		Items:                draft.Items,
		Total:                draft.Total,
		PaymentMethod:        draft.PaymentMethod,
		PaymentStatus:        "SUCCESS",
		Address:              draft.Address,
		PrescriptionRequired: draft.PrescriptionRequired,
		PrescriptionID:       draft.PrescriptionID,
		Date:                 m.now(),
		Status:               types.StatusConfirmed,
		DeliveryEstimate:     "2-3 business days",
	}
	m.app.Orders = append(m.app.Orders, order)
	if err := m.app.SaveOrders(); err != nil {
		return types.Order{}, err
	}
	logging.API("PlaceOrder: %s total=%.2f", order.ID, order.Total)
	return order, nil
}

// SendOTP simulates sending a one-time code. The demo code is fixed.
func (m *Mock) SendOTP(ctx context.Context, phone string) (string, error) {
	if err := m.sleep(ctx, m.cfg.OTPLatency()); err != nil {
		return "", err
	}
	logging.API("SendOTP: sent to %s", strings.Repeat("*", max(0, len(phone)-4))+tail(phone, 4))
	return "123456", nil
}

// ProcessPayment simulates the payment gateway step ahead of PlaceOrder.
func (m *Mock) ProcessPayment(ctx context.Context) error {
	if err := m.sleep(ctx, m.cfg.PaymentLatency()); err != nil {
		return err
	}
	if m.PaymentOutcome != nil {
		if err := m.PaymentOutcome(); err != nil {
			logging.API("ProcessPayment: simulated failure: %v", err)
			return err
		}
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
