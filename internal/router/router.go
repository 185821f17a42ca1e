// Package router implements hash-style path matching and guarded navigation
// for the storefront. A Table holds route templates in declaration order;
// Resolve turns a raw path (optionally carrying a ?query suffix) into a view
// identifier plus parameter and query bindings.
package router

import (
	"net/url"
	"regexp"
	"strings"

	"mediswift/internal/logging"
)

// View identifies a renderable view. The dispatch switch in the UI is
// exhaustive over these values, so a route pointing at a view with no page
// is a compile-time hole rather than a runtime surprise.
type View int

const (
	ViewHome View = iota
	ViewLogin
	ViewProducts
	ViewProductDetail
	ViewCart
	ViewCheckout
	ViewOrderConfirmation
	ViewOrderTracking
	ViewPrescription
	ViewProfile
	ViewSupport
	ViewTelemedicine
	ViewAdmin
	ViewWishlist
	ViewWallet
	ViewRefillReminders
)

var viewNames = map[View]string{
	ViewHome:              "home",
	ViewLogin:             "login",
	ViewProducts:          "products",
	ViewProductDetail:     "product-detail",
	ViewCart:              "cart",
	ViewCheckout:          "checkout",
	ViewOrderConfirmation: "order-confirmation",
	ViewOrderTracking:     "order-tracking",
	ViewPrescription:      "prescription",
	ViewProfile:           "profile",
	ViewSupport:           "support",
	ViewTelemedicine:      "telemedicine",
	ViewAdmin:             "admin",
	ViewWishlist:          "wishlist",
	ViewWallet:            "wallet",
	ViewRefillReminders:   "refill-reminders",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}

// Route binds a path template to a view. Templates are literal segments
// interleaved with :name segments; a named segment matches exactly one
// non-empty path segment and never spans a slash.
type Route struct {
	Template string
	View     View
}

// Resolved is the outcome of one navigation: the matched view, the
// query-stripped path, named-parameter bindings and parsed query values.
// Produced fresh per navigation and never persisted.
type Resolved struct {
	View   View
	Path   string
	Params map[string]string
	Query  map[string]string
}

var paramSegment = regexp.MustCompile(`:\w+`)

type compiledRoute struct {
	route      Route
	pattern    *regexp.Regexp
	paramNames []string
}

// Table is an ordered route set. First match wins; declaration order is the
// tie-break between otherwise ambiguous templates.
type Table struct {
	routes []compiledRoute
}

// NewTable compiles the given routes, preserving order.
func NewTable(routes []Route) *Table {
	t := &Table{}
	for _, r := range routes {
		escaped := paramSegment.ReplaceAllStringFunc(r.Template, func(string) string {
			// Placeholder survives QuoteMeta untouched.
			return "\x00"
		})
		escaped = regexp.QuoteMeta(escaped)
		pattern := "^" + strings.ReplaceAll(escaped, "\x00", "([^/]+)") + "$"

		var names []string
		for _, m := range paramSegment.FindAllString(r.Template, -1) {
			names = append(names, m[1:])
		}
		t.routes = append(t.routes, compiledRoute{
			route:      r,
			pattern:    regexp.MustCompile(pattern),
			paramNames: names,
		})
	}
	return t
}

// DefaultTable returns the storefront's route set.
func DefaultTable() *Table {
	return NewTable([]Route{
		{"/", ViewHome},
		{"/login", ViewLogin},
		{"/products", ViewProducts},
		{"/product/:id", ViewProductDetail},
		{"/cart", ViewCart},
		{"/checkout", ViewCheckout},
		{"/order-confirmation/:orderId", ViewOrderConfirmation},
		{"/order-tracking", ViewOrderTracking},
		{"/order-tracking/:orderId", ViewOrderTracking},
		{"/prescription", ViewPrescription},
		{"/profile", ViewProfile},
		{"/support", ViewSupport},
		{"/telemedicine", ViewTelemedicine},
		{"/admin", ViewAdmin},
		{"/wishlist", ViewWishlist},
		{"/wallet", ViewWallet},
		{"/refill-reminders", ViewRefillReminders},
	})
}

// Resolve matches raw against the table. The query suffix is split off
// first; an empty path resolves to the root template. When no template
// matches, the home view is returned with the stripped path and empty
// params, mirroring the fallback of the original router.
func (t *Table) Resolve(raw string) Resolved {
	if raw == "" {
		raw = "/"
	}

	path := raw
	query := map[string]string{}
	if idx := strings.Index(raw, "?"); idx != -1 {
		path = raw[:idx]
		query = ParseQuery(raw[idx+1:])
	}

	for _, cr := range t.routes {
		m := cr.pattern.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		params := make(map[string]string, len(cr.paramNames))
		for i, name := range cr.paramNames {
			params[name] = m[i+1]
		}
		logging.RouterDebug("Resolved %q -> %s params=%v query=%v", raw, cr.route.View, params, query)
		return Resolved{View: cr.route.View, Path: path, Params: params, Query: query}
	}

	logging.RouterDebug("No template for %q, falling back to home", raw)
	return Resolved{View: ViewHome, Path: path, Params: map[string]string{}, Query: query}
}

// ParseQuery parses a raw query string: pairs split on '&', key/value on the
// first '='. Values are percent-decoded; a bare key yields the empty string;
// a duplicated key keeps the last occurrence.
func ParseQuery(qs string) map[string]string {
	query := make(map[string]string)
	if qs == "" {
		return query
	}
	for _, pair := range strings.Split(qs, "&") {
		if pair == "" {
			continue
		}
		key := pair
		value := ""
		if idx := strings.Index(pair, "="); idx != -1 {
			key = pair[:idx]
			value = pair[idx+1:]
		}
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		query[key] = value
	}
	return query
}
