package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mediswift/internal/api"
	"mediswift/internal/catalog"
	"mediswift/internal/config"
	"mediswift/internal/router"
	"mediswift/internal/state"
	"mediswift/internal/store"
	"mediswift/internal/types"
)

func newTestEnv(t *testing.T) (*state.App, *api.Mock, *config.Config) {
	t.Helper()
	s, err := store.NewLocalStore(filepath.Join(t.TempDir(), "ui.db"))
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	app := state.New(s)
	if err := app.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	// Instant toasts so rendered output is assertable immediately.
	cfg.Notify.ShowDelayMs = 0

	return app, api.NewInstantMock(app), cfg
}

func newTestAppModel(t *testing.T) (AppModel, *state.App) {
	t.Helper()
	app, svc, cfg := newTestEnv(t)
	m := NewAppModel(app, svc, cfg)
	m.width, m.height = 100, 40
	m.setPageSizes()
	return m, app
}

func step(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T, want AppModel", next)
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGuardedNavigationRedirectsToLogin(t *testing.T) {
	m, _ := newTestAppModel(t)

	m = step(t, m, NavigateMsg{Path: "/checkout"})

	view := m.View()
	if !strings.Contains(view, "Welcome to MediSwift") {
		t.Errorf("expected the login view, got:\n%s", view)
	}
	if !strings.Contains(view, "Please login to continue") {
		t.Errorf("expected the guard toast, got:\n%s", view)
	}
}

func TestGuardedNavigationAllowedWithSession(t *testing.T) {
	m, app := newTestAppModel(t)
	if err := app.SetSession(app.Users[0]); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	m = step(t, m, NavigateMsg{Path: "/profile"})

	if !strings.Contains(m.View(), "My Account") {
		t.Error("expected the profile view for a logged-in user")
	}
}

func TestNavigateProductDetail(t *testing.T) {
	m, app := newTestAppModel(t)
	p := app.Products[0]

	m = step(t, m, NavigateMsg{Path: "/product/" + p.ID})

	view := m.View()
	if !strings.Contains(view, p.Name) {
		t.Errorf("detail view missing product name %q:\n%s", p.Name, view)
	}
}

func TestNavigateUnknownProductShowsNotFound(t *testing.T) {
	m, _ := newTestAppModel(t)
	m = step(t, m, NavigateMsg{Path: "/product/nope"})
	if !strings.Contains(m.View(), "Product Not Found") {
		t.Error("expected the not-found rendering")
	}
}

func TestUnknownPathFallsBackToHomeView(t *testing.T) {
	m, _ := newTestAppModel(t)
	m = step(t, m, NavigateMsg{Path: "/does-not-exist"})
	if !strings.Contains(m.View(), "Your Health, Delivered Swiftly") {
		t.Error("expected the home view fallback")
	}
}

func TestCartPageEmptyState(t *testing.T) {
	m, _ := newTestAppModel(t)
	m = step(t, m, NavigateMsg{Path: "/cart"})
	if !strings.Contains(m.View(), "Your cart is empty") {
		t.Error("expected the empty-cart message")
	}
}

func TestCartPageShowsTotals(t *testing.T) {
	m, app := newTestAppModel(t)
	if err := app.AddToCart(app.Products[0], 2); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	m = step(t, m, NavigateMsg{Path: "/cart"})

	view := m.View()
	for _, want := range []string{"Subtotal", "Discount", "Delivery", "GST", "Total"} {
		if !strings.Contains(view, want) {
			t.Errorf("cart view missing %q", want)
		}
	}
}

func TestProductsPageRendersCatalogAfterLoad(t *testing.T) {
	m, app := newTestAppModel(t)
	m = step(t, m, NavigateMsg{Path: "/products"})
	m = step(t, m, catalogLoadedMsg{products: app.Products})

	view := m.View()
	if !strings.Contains(view, app.Products[0].Name) {
		t.Errorf("products view missing first product:\n%s", view)
	}
}

func TestProductsDeepLinkSearchQuery(t *testing.T) {
	m, app := newTestAppModel(t)
	target := app.Products[0]

	m = step(t, m, NavigateMsg{Path: "/products?search=" + target.Name})
	m = step(t, m, catalogLoadedMsg{products: app.Products})

	view := m.View()
	if !strings.Contains(view, target.Name) {
		t.Errorf("filtered view missing %q", target.Name)
	}
}

func TestTrackingTimelineRendering(t *testing.T) {
	m, app := newTestAppModel(t)
	app.Orders = append(app.Orders, types.Order{
		ID:               "ORD77",
		Status:           types.StatusPacked,
		DeliveryEstimate: "2-3 business days",
	})

	m = step(t, m, NavigateMsg{Path: "/order-tracking/ORD77"})

	view := m.View()
	for _, want := range []string{"ORD77", "Order Confirmed", "Packed", "Out for Delivery", "Delivered"} {
		if !strings.Contains(view, want) {
			t.Errorf("timeline missing %q", want)
		}
	}
}

func TestTrackingUnknownOrder(t *testing.T) {
	m, _ := newTestAppModel(t)
	m = step(t, m, NavigateMsg{Path: "/order-tracking/ORD404"})
	if !strings.Contains(m.View(), "No order found with ID ORD404") {
		t.Error("expected the not-found message")
	}
}

func TestTrackingFormWithoutID(t *testing.T) {
	m, _ := newTestAppModel(t)
	m = step(t, m, NavigateMsg{Path: "/order-tracking"})
	if !strings.Contains(m.View(), "Track Your Order") {
		t.Error("expected the lookup form")
	}
}

func TestConfirmationSavesInvoice(t *testing.T) {
	m, app := newTestAppModel(t)
	app.Orders = append(app.Orders, types.Order{
		ID:    "ORD88",
		Total: 229,
		Date:  time.Now(),
		Items: []types.OrderItem{{Name: "Paracetamol", Quantity: 1, Price: 25}},
	})

	m = step(t, m, NavigateMsg{Path: "/order-confirmation/ORD88"})
	m = step(t, m, keyRunes("i"))

	path := filepath.Join(m.cfg.DataDir, "invoices", "ORD88.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("invoice not written: %v", err)
	}
	if !strings.Contains(string(data), "ORD88") {
		t.Errorf("invoice content missing order id:\n%s", data)
	}
}

func TestPaymentFailureKeepsCart(t *testing.T) {
	m, app := newTestAppModel(t)
	if err := app.SetSession(app.Users[0]); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if err := app.AddToCart(app.Products[0], 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	m = step(t, m, NavigateMsg{Path: "/checkout"})
	next, cmd := m.Update(paymentResultMsg{err: api.ErrPaymentFailed})
	m = next.(AppModel)

	if len(app.Cart) != 1 {
		t.Error("a failed payment must leave the cart intact")
	}
	if cmd == nil {
		t.Error("expected a failure toast command")
	}
	if m.checkout.paying {
		t.Error("the pay trigger must be re-enabled after a failure")
	}
}

func TestPaymentSuccessClearsCartAndNavigates(t *testing.T) {
	m, app := newTestAppModel(t)
	if err := app.SetSession(app.Users[0]); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if err := app.AddToCart(app.Products[0], 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	app.Orders = append(app.Orders, types.Order{ID: "ORD99", Status: types.StatusConfirmed})

	m = step(t, m, NavigateMsg{Path: "/checkout"})
	next, cmd := m.Update(paymentResultMsg{order: app.Orders[0]})
	m = next.(AppModel)

	if len(app.Cart) != 0 {
		t.Error("a successful payment must clear the cart")
	}
	if cmd == nil {
		t.Error("expected a navigation command to the confirmation view")
	}
}

func TestRegisterPasswordMismatchRejected(t *testing.T) {
	m, app := newTestAppModel(t)

	m = step(t, m, NavigateMsg{Path: "/login"})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	vals := []string{"Asha Rao", "28", "9000000001", "asha@example.com", "12 Lake Road, Kolkata", "secret1", "secret2"}
	for i, v := range vals {
		m.login.regInputs[i].SetValue(v)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(AppModel)

	if cmd == nil {
		t.Fatal("expected a validation toast command")
	}
	msg, ok := cmd().(toastMsg)
	if !ok || msg.message != "Passwords do not match" {
		t.Errorf("got %#v, want the password mismatch toast", msg)
	}
	if app.HasSession() {
		t.Error("a rejected registration must not create a session")
	}
	if len(app.Users) != 1 {
		t.Errorf("users = %d, want only the seeded account", len(app.Users))
	}
	if m.login.busy || m.login.awaitingOTP {
		t.Error("a rejected registration must not reach the backend")
	}
}

func TestCheckoutBlockedWithoutPrescription(t *testing.T) {
	m, app := newTestAppModel(t)

	var rx types.Product
	for _, p := range app.Products {
		if p.RequiresPrescription {
			rx = p
			break
		}
	}
	if rx.ID == "" {
		t.Fatal("seed catalog has no prescription product")
	}
	if err := app.AddToCart(rx, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	m = step(t, m, NavigateMsg{Path: "/cart"})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(AppModel)

	if cmd == nil {
		t.Fatal("expected a warning toast command")
	}
	msg, ok := cmd().(toastMsg)
	if !ok || !strings.Contains(msg.message, "upload a prescription") {
		t.Errorf("got %#v, want the prescription warning toast", msg)
	}
	if m.current.View != router.ViewCart {
		t.Errorf("view = %s, checkout must stay blocked", m.current.View)
	}
	if len(app.Cart) != 1 {
		t.Error("the cart must be left untouched")
	}
}

func TestProductsSortResetsOnFreshVisit(t *testing.T) {
	m, app := newTestAppModel(t)
	m = step(t, m, NavigateMsg{Path: "/products"})
	m = step(t, m, catalogLoadedMsg{products: app.Products})

	m = step(t, m, keyRunes("o"))
	if m.products.sortKey == catalog.SortNameAsc {
		t.Fatal("sort key did not cycle")
	}

	m = step(t, m, NavigateMsg{Path: "/products"})
	if m.products.sortKey != catalog.SortNameAsc {
		t.Errorf("sort key = %s, a fresh visit must restore the default", m.products.sortKey)
	}
}

func TestWalletStubShowsBalanceWithSession(t *testing.T) {
	m, app := newTestAppModel(t)
	if err := app.SetSession(app.Users[0]); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	m = step(t, m, NavigateMsg{Path: "/wallet"})

	if !strings.Contains(m.View(), "Wallet balance") {
		t.Error("expected the wallet balance summary")
	}
}

func TestNavBadgeReflectsCartCount(t *testing.T) {
	m, app := newTestAppModel(t)
	if err := app.AddToCart(app.Products[0], 3); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	m = step(t, m, NavigateMsg{Path: "/"})
	if !strings.Contains(m.View(), "3") {
		t.Error("nav bar missing the cart quantity badge")
	}
}

func TestSupportViewShowsFAQAndChat(t *testing.T) {
	m, _ := newTestAppModel(t)
	m = step(t, m, NavigateMsg{Path: "/support"})
	view := m.View()
	if !strings.Contains(view, "Help & Support") || !strings.Contains(view, "Chat with the Assistant") {
		t.Errorf("support view incomplete:\n%s", view)
	}
}

func TestTruncateCapsLongStrings(t *testing.T) {
	if got := truncate("Paracetamol 500mg", 40); got != "Paracetamol 500mg" {
		t.Errorf("short strings must pass through, got %q", got)
	}
	long := strings.Repeat("x", 50)
	if got := truncate(long, 10); got != strings.Repeat("x", 7)+"..." {
		t.Errorf("truncate = %q, want 7 runes plus ellipsis", got)
	}
}

func TestRenderDividerWidth(t *testing.T) {
	s := NewStyles(LightTheme())
	if got := s.RenderDivider(12); !strings.Contains(got, strings.Repeat("─", 12)) {
		t.Errorf("divider = %q, want 12 rule characters", got)
	}
}

func TestThemeByName(t *testing.T) {
	if !ThemeByName("dark").IsDark {
		t.Error("dark theme not dark")
	}
	if ThemeByName("light").IsDark {
		t.Error("light theme dark")
	}
}
