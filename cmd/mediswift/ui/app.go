package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/api"
	"mediswift/internal/cart"
	"mediswift/internal/config"
	"mediswift/internal/logging"
	"mediswift/internal/notify"
	"mediswift/internal/router"
	"mediswift/internal/state"
)

// NavigateMsg requests a transition to the given path. It is the only way
// any part of the UI changes the active view; the root model guards and
// resolves it before dispatching.
type NavigateMsg struct {
	Path string
}

// navigate returns a command that emits a NavigateMsg.
func navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// toastMsg asks the root model to enqueue a toast. Pages emit these instead
// of touching the notification center directly.
type toastMsg struct {
	message  string
	severity notify.Severity
}

func toast(message string, severity notify.Severity) tea.Cmd {
	return func() tea.Msg { return toastMsg{message: message, severity: severity} }
}

// toastTickMsg wakes the root model to expire finished toasts.
type toastTickMsg struct{}

// ConfigReloadedMsg is sent by the config file watcher when the file
// changes on disk.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// AppModel is the root bubbletea model: it owns the application state, the
// route table, the toast queue and one page model per view, and renders the
// persistent chrome around whichever page is active.
type AppModel struct {
	state  *state.App
	svc    api.Service
	cfg    *config.Config
	styles Styles
	table  *router.Table
	toasts *notify.Center

	width   int
	height  int
	current router.Resolved

	home         HomePageModel
	login        LoginPageModel
	products     ProductsPageModel
	detail       DetailPageModel
	cartPage     CartPageModel
	checkout     CheckoutPageModel
	confirmation ConfirmationPageModel
	tracking     TrackingPageModel
	prescription PrescriptionPageModel
	profile      ProfilePageModel
	support      SupportPageModel
	telemedicine TelemedicinePageModel
	stub         StubPageModel
}

// NewAppModel wires the root model over loaded state.
func NewAppModel(st *state.App, svc api.Service, cfg *config.Config) AppModel {
	styles := NewStyles(ThemeByName(cfg.Theme))
	return AppModel{
		state:  st,
		svc:    svc,
		cfg:    cfg,
		styles: styles,
		table:  router.DefaultTable(),
		toasts: notify.NewCenter(cfg.Notify),

		home:         NewHomePageModel(st, styles),
		login:        NewLoginPageModel(st, svc, styles),
		products:     NewProductsPageModel(st, svc, styles),
		detail:       NewDetailPageModel(st, styles),
		cartPage:     NewCartPageModel(st, styles),
		checkout:     NewCheckoutPageModel(st, svc, styles),
		confirmation: NewConfirmationPageModel(st, cfg.DataDir, styles),
		tracking:     NewTrackingPageModel(st, styles),
		prescription: NewPrescriptionPageModel(st, styles),
		profile:      NewProfilePageModel(st, styles),
		support:      NewSupportPageModel(st, styles),
		telemedicine: NewTelemedicinePageModel(st, styles),
		stub:         NewStubPageModel(styles),
	}
}

// Init navigates to the home view. On a first run the support assistant
// announces itself, the way the chat widget used to auto-open.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{navigate("/")}
	if m.state.FirstVisit() {
		cmds = append(cmds, toast("Need help? Press 's' any time to chat with the assistant.", notify.SeverityInfo))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.setPageSizes()
		return m, nil

	case NavigateMsg:
		return m.handleNavigate(msg.Path)

	case toastMsg:
		m.toasts.Push(msg.message, msg.severity)
		return m, m.scheduleToastTick()

	case toastTickMsg:
		m.toasts.Expire()
		return m, m.scheduleToastTick()

	case ConfigReloadedMsg:
		// The chrome recolors immediately; page models pick up the new
		// theme on the next launch.
		m.cfg = msg.Cfg
		m.styles = NewStyles(ThemeByName(msg.Cfg.Theme))
		m.toasts.Push("Configuration reloaded", notify.SeverityInfo)
		return m, m.scheduleToastTick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.typing() {
			if cmd, handled := m.globalKey(msg.String()); handled {
				return m, cmd
			}
		}
	}

	return m.updatePage(msg)
}

// handleNavigate runs the guard, resolves the path and dispatches to the
// matched view. A denied navigation redirects to login and the original
// target is discarded.
func (m AppModel) handleNavigate(path string) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	decision := router.Guard(path, m.state.HasSession())
	if !decision.Allowed {
		m.toasts.Push(decision.Message, notify.SeverityWarning)
		cmds = append(cmds, m.scheduleToastTick())
		path = decision.RedirectTo
	}

	res := m.table.Resolve(path)
	logging.Views("Dispatching view %s path=%s", res.View, res.Path)
	m.current = res

	var cmd tea.Cmd
	switch res.View {
	case router.ViewHome:
		m.home = m.home.Enter()
	case router.ViewLogin:
		m.login = m.login.Enter()
	case router.ViewProducts:
		m.products, cmd = m.products.Enter(res.Query)
	case router.ViewProductDetail:
		m.detail = m.detail.Enter(res.Params["id"])
	case router.ViewCart:
		m.cartPage = m.cartPage.Enter()
	case router.ViewCheckout:
		m.checkout = m.checkout.Enter()
	case router.ViewOrderConfirmation:
		m.confirmation = m.confirmation.Enter(res.Params["orderId"])
	case router.ViewOrderTracking:
		m.tracking = m.tracking.Enter(res.Params["orderId"])
	case router.ViewPrescription:
		m.prescription = m.prescription.Enter()
	case router.ViewProfile:
		m.profile = m.profile.Enter()
	case router.ViewSupport:
		m.support = m.support.Enter()
	case router.ViewTelemedicine:
		m.telemedicine = m.telemedicine.Enter()
	case router.ViewAdmin:
		m.stub = m.stub.Enter("Admin Console", "The admin console is not part of the demo build.")
	case router.ViewWishlist:
		m.stub = m.stub.Enter("Wishlist", m.wishlistSummary())
	case router.ViewWallet:
		m.stub = m.stub.Enter("Wallet", m.walletSummary())
	case router.ViewRefillReminders:
		m.stub = m.stub.Enter("Refill Reminders", "No refill reminders are scheduled yet.")
	}
	m.setPageSizes()

	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// updatePage forwards a message to the page that owns it. Async results
// are routed by type so a reply still lands after the user navigates away;
// everything else goes to the active view.
func (m AppModel) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.(type) {
	case catalogLoadedMsg:
		m.products, cmd = m.products.Update(msg)
		return m, cmd
	case authResultMsg, otpSentMsg:
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	case paymentResultMsg:
		m.checkout, cmd = m.checkout.Update(msg)
		return m, cmd
	case chatReplyMsg:
		m.support, cmd = m.support.Update(msg)
		return m, cmd
	}

	switch m.current.View {
	case router.ViewHome:
		m.home, cmd = m.home.Update(msg)
	case router.ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case router.ViewProducts:
		m.products, cmd = m.products.Update(msg)
	case router.ViewProductDetail:
		m.detail, cmd = m.detail.Update(msg)
	case router.ViewCart:
		m.cartPage, cmd = m.cartPage.Update(msg)
	case router.ViewCheckout:
		m.checkout, cmd = m.checkout.Update(msg)
	case router.ViewOrderConfirmation:
		m.confirmation, cmd = m.confirmation.Update(msg)
	case router.ViewOrderTracking:
		m.tracking, cmd = m.tracking.Update(msg)
	case router.ViewPrescription:
		m.prescription, cmd = m.prescription.Update(msg)
	case router.ViewProfile:
		m.profile, cmd = m.profile.Update(msg)
	case router.ViewSupport:
		m.support, cmd = m.support.Update(msg)
	case router.ViewTelemedicine:
		m.telemedicine, cmd = m.telemedicine.Update(msg)
	case router.ViewAdmin, router.ViewWishlist, router.ViewWallet, router.ViewRefillReminders:
		m.stub, cmd = m.stub.Update(msg)
	}
	return m, cmd
}

// typing reports whether the active view currently owns a focused text
// input, in which case global hotkeys stay out of the way.
func (m AppModel) typing() bool {
	switch m.current.View {
	case router.ViewLogin:
		return m.login.Typing()
	case router.ViewProducts:
		return m.products.Typing()
	case router.ViewCheckout:
		return m.checkout.Typing()
	case router.ViewOrderTracking:
		return m.tracking.Typing()
	case router.ViewPrescription:
		return m.prescription.Typing()
	case router.ViewSupport:
		return m.support.Typing()
	case router.ViewTelemedicine:
		return m.telemedicine.Typing()
	}
	return false
}

func (m AppModel) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "q":
		return tea.Quit, true
	case "h", "esc":
		return navigate("/"), true
	case "p":
		return navigate("/products"), true
	case "c":
		return navigate("/cart"), true
	case "r":
		return navigate("/prescription"), true
	case "m":
		return navigate("/telemedicine"), true
	case "t":
		return navigate("/order-tracking"), true
	case "s":
		return navigate("/support"), true
	case "w":
		return navigate("/wishlist"), true
	case "a":
		if m.state.HasSession() {
			return navigate("/profile"), true
		}
		return navigate("/login"), true
	}
	return nil, false
}

// scheduleToastTick arms a wake-up for the soonest toast expiry.
func (m AppModel) scheduleToastTick() tea.Cmd {
	next, ok := m.toasts.NextExpiry()
	if !ok {
		return nil
	}
	d := time.Until(next)
	if d < 0 {
		d = 0
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return toastTickMsg{} })
}

func (m *AppModel) setPageSizes() {
	w, h := m.width, m.height-4
	if h < 0 {
		h = 0
	}
	m.home.SetSize(w, h)
	m.login.SetSize(w, h)
	m.products.SetSize(w, h)
	m.detail.SetSize(w, h)
	m.cartPage.SetSize(w, h)
	m.checkout.SetSize(w, h)
	m.confirmation.SetSize(w, h)
	m.tracking.SetSize(w, h)
	m.prescription.SetSize(w, h)
	m.profile.SetSize(w, h)
	m.support.SetSize(w, h)
	m.telemedicine.SetSize(w, h)
	m.stub.SetSize(w, h)
}

func (m AppModel) View() string {
	header := m.renderHeader()
	content := m.renderContent()
	footer := m.renderFooter()
	toasts := m.renderToasts()

	view := lipgloss.JoinVertical(lipgloss.Left, header, content)
	if toasts != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, toasts)
	}
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, view, footer))
}

func (m AppModel) renderContent() string {
	switch m.current.View {
	case router.ViewHome:
		return m.home.View()
	case router.ViewLogin:
		return m.login.View()
	case router.ViewProducts:
		return m.products.View()
	case router.ViewProductDetail:
		return m.detail.View()
	case router.ViewCart:
		return m.cartPage.View()
	case router.ViewCheckout:
		return m.checkout.View()
	case router.ViewOrderConfirmation:
		return m.confirmation.View()
	case router.ViewOrderTracking:
		return m.tracking.View()
	case router.ViewPrescription:
		return m.prescription.View()
	case router.ViewProfile:
		return m.profile.View()
	case router.ViewSupport:
		return m.support.View()
	case router.ViewTelemedicine:
		return m.telemedicine.View()
	case router.ViewAdmin, router.ViewWishlist, router.ViewWallet, router.ViewRefillReminders:
		return m.stub.View()
	}
	return m.home.View()
}

var navLinks = []struct {
	label string
	path  string
	view  router.View
}{
	{"Home", "/", router.ViewHome},
	{"Products", "/products", router.ViewProducts},
	{"Prescription", "/prescription", router.ViewPrescription},
	{"Telemedicine", "/telemedicine", router.ViewTelemedicine},
	{"Track Order", "/order-tracking", router.ViewOrderTracking},
	{"Support", "/support", router.ViewSupport},
}

func (m AppModel) renderHeader() string {
	brand := m.styles.Header.Render("⚕ MediSwift")

	links := ""
	for _, l := range navLinks {
		style := m.styles.NavLink
		if m.current.View == l.view {
			style = m.styles.NavLinkActive
		}
		links += style.Render(l.label)
	}

	badges := ""
	if n := cart.ItemCount(m.state.Cart); n > 0 {
		badges += " " + m.styles.Badge.Render(fmt.Sprintf("🛒 %d", n))
	}
	if n := len(m.state.Wishlist); n > 0 {
		badges += " " + m.styles.Badge.Render(fmt.Sprintf("♥ %d", n))
	}

	session := m.styles.Muted.Render(" login")
	if m.state.CurrentUser != nil {
		session = m.styles.Bold.Render(" " + m.state.CurrentUser.FirstName())
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, brand, links, badges, session)
}

func (m AppModel) renderFooter() string {
	hints := "h home · p products · c cart · t track · s support · a account · q quit"
	return m.styles.Footer.Render(hints)
}

// renderToasts draws the live notification queue, oldest first. Toasts in
// their show delay are held back so they appear to slide in.
func (m AppModel) renderToasts() string {
	active := m.toasts.Active()
	if len(active) == 0 {
		return ""
	}
	now := time.Now()
	out := ""
	for _, t := range active {
		if !t.Visible(now) {
			continue
		}
		line := m.styles.ToastStyle(string(t.Severity)).Render(t.Severity.Icon() + " " + t.Message)
		if out != "" {
			out += "\n"
		}
		out += line
	}
	return out
}

func (m AppModel) wishlistSummary() string {
	if len(m.state.Wishlist) == 0 {
		return "Your wishlist is empty. Press ♥ on any product to save it here."
	}
	out := ""
	for _, p := range m.state.Wishlist {
		if out != "" {
			out += "\n"
		}
		out += fmt.Sprintf("• %s — ₹%.2f", p.Name, p.DiscountPrice)
	}
	return out
}

func (m AppModel) walletSummary() string {
	if m.state.CurrentUser == nil {
		return "Login to view your wallet balance."
	}
	return fmt.Sprintf("Wallet balance: ₹%.2f", m.state.CurrentUser.WalletBalance)
}
