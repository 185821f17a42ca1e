// Package state holds the in-memory mirror of every persisted collection
// plus the mutation helpers the views call. An *App is passed explicitly to
// whatever needs it; there are no ambient globals. Every mutation that must
// survive a restart flushes its whole collection synchronously - the model
// is single-threaded, so last-writer-wins is safe.
package state

import (
	"encoding/json"
	"fmt"
	"time"

	"mediswift/internal/logging"
	"mediswift/internal/store"
	"mediswift/internal/types"
)

// App is the live application state.
type App struct {
	Users         []types.User
	CurrentUser   *types.User
	Cart          []types.CartItem
	Wishlist      []types.Product
	Products      []types.Product
	Orders        []types.Order
	Prescriptions []types.Prescription
	Addresses     []types.Address
	Appointments  []types.Appointment
	ChatHistory   []types.ChatMessage

	store *store.LocalStore
}

// New returns an empty App bound to the given store. Call Load before use.
func New(s *store.LocalStore) *App {
	return &App{store: s}
}

// Load hydrates every collection from the store, seeding the catalog and
// the demo account on first run.
func (a *App) Load() error {
	timer := logging.StartTimer(logging.CategoryBoot, "state.Load")
	defer timer.Stop()

	if err := a.load(store.KeyUsers, &a.Users); err != nil {
		return err
	}
	if err := a.load(store.KeySession, &a.CurrentUser); err != nil {
		return err
	}
	if err := a.load(store.KeyCart, &a.Cart); err != nil {
		return err
	}
	if err := a.load(store.KeyWishlist, &a.Wishlist); err != nil {
		return err
	}
	if err := a.load(store.KeyProducts, &a.Products); err != nil {
		return err
	}
	if err := a.load(store.KeyOrders, &a.Orders); err != nil {
		return err
	}
	if err := a.load(store.KeyPrescriptions, &a.Prescriptions); err != nil {
		return err
	}
	if err := a.load(store.KeyAddresses, &a.Addresses); err != nil {
		return err
	}
	if err := a.load(store.KeyAppointments, &a.Appointments); err != nil {
		return err
	}
	if err := a.load(store.KeyChatHistory, &a.ChatHistory); err != nil {
		return err
	}

	if len(a.Products) == 0 {
		seed, err := types.SeedCatalog()
		if err != nil {
			return err
		}
		a.Products = seed
		if err := a.SaveProducts(); err != nil {
			return err
		}
		logging.Boot("Seeded catalog with %d products", len(seed))
	}

	if len(a.Users) == 0 {
		a.Users = append(a.Users, types.SeedAdminUser(time.Now()))
		if err := a.SaveUsers(); err != nil {
			return err
		}
		logging.Boot("Seeded demo admin user")
	}

	return nil
}

func (a *App) load(key string, dst interface{}) error {
	raw, ok, err := a.store.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to decode collection %s: %w", key, err)
	}
	return nil
}

func (a *App) save(key string, src interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}
	return a.store.Set(key, string(data))
}

// SaveUsers flushes the users collection.
func (a *App) SaveUsers() error { return a.save(store.KeyUsers, a.Users) }

// SaveCart flushes the cart collection.
func (a *App) SaveCart() error { return a.save(store.KeyCart, a.Cart) }

// SaveWishlist flushes the wishlist collection.
func (a *App) SaveWishlist() error { return a.save(store.KeyWishlist, a.Wishlist) }

// SaveProducts flushes the catalog.
func (a *App) SaveProducts() error { return a.save(store.KeyProducts, a.Products) }

// SaveOrders flushes the orders collection.
func (a *App) SaveOrders() error { return a.save(store.KeyOrders, a.Orders) }

// SavePrescriptions flushes the prescriptions collection.
func (a *App) SavePrescriptions() error { return a.save(store.KeyPrescriptions, a.Prescriptions) }

// SaveAddresses flushes the addresses collection.
func (a *App) SaveAddresses() error { return a.save(store.KeyAddresses, a.Addresses) }

// SaveAppointments flushes the appointments collection.
func (a *App) SaveAppointments() error { return a.save(store.KeyAppointments, a.Appointments) }

// SaveChatHistory flushes the assistant conversation.
func (a *App) SaveChatHistory() error { return a.save(store.KeyChatHistory, a.ChatHistory) }

// HasSession reports whether a user is logged in.
func (a *App) HasSession() bool { return a.CurrentUser != nil }

// SetSession stores the logged-in user and persists the session.
func (a *App) SetSession(u types.User) error {
	a.CurrentUser = &u
	return a.save(store.KeySession, a.CurrentUser)
}

// Logout clears only the session key from the store, then empties the
// cart, wishlist and prescriptions and flushes them, matching the original
// logout behavior.
func (a *App) Logout() error {
	a.CurrentUser = nil
	if err := a.store.Clear(store.KeySession); err != nil {
		return err
	}

	a.Cart = nil
	a.Wishlist = nil
	a.Prescriptions = nil
	if err := a.SaveCart(); err != nil {
		return err
	}
	if err := a.SaveWishlist(); err != nil {
		return err
	}
	return a.SavePrescriptions()
}

// AddToCart merges qty units of the product into the cart: an existing
// line for the same product id has its quantity summed, otherwise a new
// line is appended.
func (a *App) AddToCart(p types.Product, qty int) error {
	logging.Cart("Adding %d x %s to cart", qty, p.ID)
	for i := range a.Cart {
		if a.Cart[i].Product.ID == p.ID {
			a.Cart[i].Quantity += qty
			return a.SaveCart()
		}
	}
	a.Cart = append(a.Cart, types.CartItem{Product: p, Quantity: qty})
	return a.SaveCart()
}

// IncrementCartItem adds one unit to the line with the given product id.
func (a *App) IncrementCartItem(id string) error {
	for i := range a.Cart {
		if a.Cart[i].Product.ID == id {
			a.Cart[i].Quantity++
			return a.SaveCart()
		}
	}
	return nil
}

// DecrementCartItem removes one unit; a line at quantity one is removed
// entirely.
func (a *App) DecrementCartItem(id string) error {
	for i := range a.Cart {
		if a.Cart[i].Product.ID == id {
			if a.Cart[i].Quantity > 1 {
				a.Cart[i].Quantity--
			} else {
				a.Cart = append(a.Cart[:i], a.Cart[i+1:]...)
			}
			return a.SaveCart()
		}
	}
	return nil
}

// RemoveFromCart deletes the line with the given product id.
func (a *App) RemoveFromCart(id string) error {
	for i := range a.Cart {
		if a.Cart[i].Product.ID == id {
			a.Cart = append(a.Cart[:i], a.Cart[i+1:]...)
			return a.SaveCart()
		}
	}
	return nil
}

// ClearCart empties the cart, e.g. after a successful order.
func (a *App) ClearCart() error {
	a.Cart = nil
	return a.SaveCart()
}

// InWishlist reports whether the product id is wishlisted.
func (a *App) InWishlist(id string) bool {
	for _, p := range a.Wishlist {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ToggleWishlist adds or removes the product and reports whether it is now
// present.
func (a *App) ToggleWishlist(p types.Product) (bool, error) {
	for i := range a.Wishlist {
		if a.Wishlist[i].ID == p.ID {
			a.Wishlist = append(a.Wishlist[:i], a.Wishlist[i+1:]...)
			return false, a.SaveWishlist()
		}
	}
	a.Wishlist = append(a.Wishlist, p)
	return true, a.SaveWishlist()
}

// AddAddress appends an address; the first address becomes the default.
func (a *App) AddAddress(addr types.Address) error {
	addr.IsDefault = len(a.Addresses) == 0
	a.Addresses = append(a.Addresses, addr)
	return a.SaveAddresses()
}

// SetDefaultAddress marks the given address as default and clears the flag
// on every other address, keeping exactly one default.
func (a *App) SetDefaultAddress(id string) error {
	for i := range a.Addresses {
		a.Addresses[i].IsDefault = a.Addresses[i].ID == id
	}
	return a.SaveAddresses()
}

// DefaultAddress returns the default address, falling back to the first
// one.
func (a *App) DefaultAddress() (types.Address, bool) {
	for _, addr := range a.Addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	if len(a.Addresses) > 0 {
		return a.Addresses[0], true
	}
	return types.Address{}, false
}

// EnsureDefaultAddress seeds one address from the session profile when the
// address list is empty, as the checkout view does on entry. No-op without
// a session.
func (a *App) EnsureDefaultAddress() error {
	if len(a.Addresses) > 0 || a.CurrentUser == nil {
		return nil
	}
	a.Addresses = append(a.Addresses, types.Address{
		ID:        "1",
		Type:      "home",
		Name:      a.CurrentUser.Name,
		Phone:     a.CurrentUser.Phone,
		Line:      a.CurrentUser.Address,
		Pincode:   "700016",
		City:      "Kolkata",
		State:     "West Bengal",
		IsDefault: true,
	})
	return a.SaveAddresses()
}

// AddPrescription records an uploaded prescription.
func (a *App) AddPrescription(p types.Prescription) error {
	a.Prescriptions = append(a.Prescriptions, p)
	return a.SavePrescriptions()
}

// AddAppointment records a telemedicine booking.
func (a *App) AddAppointment(apt types.Appointment) error {
	a.Appointments = append(a.Appointments, apt)
	return a.SaveAppointments()
}

// AppendChat records one assistant conversation line.
func (a *App) AppendChat(msg types.ChatMessage) error {
	a.ChatHistory = append(a.ChatHistory, msg)
	return a.SaveChatHistory()
}

// RecentChat returns the last n conversation lines.
func (a *App) RecentChat(n int) []types.ChatMessage {
	if len(a.ChatHistory) <= n {
		return a.ChatHistory
	}
	return a.ChatHistory[len(a.ChatHistory)-n:]
}

// FirstVisit reports whether this is the first run, and marks it visited.
// The support assistant auto-opens once on first visit.
func (a *App) FirstVisit() bool {
	_, ok, err := a.store.Get(store.KeyVisited)
	if err != nil || ok {
		return false
	}
	_ = a.store.Set(store.KeyVisited, "true")
	return true
}
