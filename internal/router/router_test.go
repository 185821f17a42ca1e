package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveStaticRoutes(t *testing.T) {
	table := DefaultTable()

	cases := map[string]View{
		"/":               ViewHome,
		"/login":          ViewLogin,
		"/products":       ViewProducts,
		"/cart":           ViewCart,
		"/checkout":       ViewCheckout,
		"/order-tracking": ViewOrderTracking,
		"/prescription":   ViewPrescription,
		"/profile":        ViewProfile,
		"/support":        ViewSupport,
		"/telemedicine":   ViewTelemedicine,
		"/admin":          ViewAdmin,
		"/wishlist":       ViewWishlist,
		"/wallet":         ViewWallet,
	}
	for path, want := range cases {
		got := table.Resolve(path)
		if got.View != want {
			t.Errorf("Resolve(%q).View = %s, want %s", path, got.View, want)
		}
		if len(got.Params) != 0 {
			t.Errorf("Resolve(%q) has params %v, want none", path, got.Params)
		}
	}
}

func TestResolveEmptyPathIsHome(t *testing.T) {
	got := DefaultTable().Resolve("")
	if got.View != ViewHome {
		t.Errorf("Resolve(\"\").View = %s, want home", got.View)
	}
}

func TestResolveParams(t *testing.T) {
	table := DefaultTable()

	got := table.Resolve("/product/med7")
	if got.View != ViewProductDetail {
		t.Fatalf("view = %s, want product-detail", got.View)
	}
	if got.Params["id"] != "med7" {
		t.Errorf("params[id] = %q, want med7", got.Params["id"])
	}

	got = table.Resolve("/order-confirmation/ORD1763280000000")
	if got.View != ViewOrderConfirmation {
		t.Fatalf("view = %s, want order-confirmation", got.View)
	}
	if got.Params["orderId"] != "ORD1763280000000" {
		t.Errorf("params[orderId] = %q", got.Params["orderId"])
	}
}

func TestParamNeverSpansSlash(t *testing.T) {
	got := DefaultTable().Resolve("/product/a/b")
	if got.View != ViewHome {
		t.Errorf("/product/a/b matched %s, want home fallback", got.View)
	}
}

func TestParamRequiresNonEmptySegment(t *testing.T) {
	got := DefaultTable().Resolve("/product/")
	if got.View != ViewHome {
		t.Errorf("/product/ matched %s, want home fallback", got.View)
	}
}

func TestTrackingWithAndWithoutID(t *testing.T) {
	table := DefaultTable()

	bare := table.Resolve("/order-tracking")
	if bare.View != ViewOrderTracking || bare.Params["orderId"] != "" {
		t.Errorf("bare tracking: view=%s params=%v", bare.View, bare.Params)
	}

	withID := table.Resolve("/order-tracking/ORD42")
	if withID.View != ViewOrderTracking || withID.Params["orderId"] != "ORD42" {
		t.Errorf("tracking with id: view=%s params=%v", withID.View, withID.Params)
	}
}

func TestFirstMatchWins(t *testing.T) {
	table := NewTable([]Route{
		{"/product/:id", ViewProductDetail},
		{"/product/special", ViewAdmin},
	})
	got := table.Resolve("/product/special")
	if got.View != ViewProductDetail {
		t.Errorf("declaration order not respected: got %s", got.View)
	}
}

func TestUnknownPathFallsBackToHome(t *testing.T) {
	got := DefaultTable().Resolve("/no-such-page?foo=bar")
	if got.View != ViewHome {
		t.Errorf("view = %s, want home", got.View)
	}
	if got.Path != "/no-such-page" {
		t.Errorf("path = %q, want stripped path", got.Path)
	}
	if got.Query["foo"] != "bar" {
		t.Errorf("query = %v, want foo=bar preserved", got.Query)
	}
}

func TestResolveStripsQuery(t *testing.T) {
	got := DefaultTable().Resolve("/products?category=Tablet&search=para")
	if got.View != ViewProducts {
		t.Fatalf("view = %s, want products", got.View)
	}
	want := map[string]string{"category": "Tablet", "search": "para"}
	if diff := cmp.Diff(want, got.Query); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuery(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"single", "a=1", map[string]string{"a": "1"}},
		{"bare key", "flag", map[string]string{"flag": ""}},
		{"last duplicate wins", "a=1&a=2", map[string]string{"a": "2"}},
		{"percent decoding", "q=pain%20relief", map[string]string{"q": "pain relief"}},
		{"equals in value", "eq=a=b", map[string]string{"eq": "a=b"}},
		{"empty pair skipped", "a=1&&b=2", map[string]string{"a": "1", "b": "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseQuery(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseQuery(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestGuardAllowsPublicPaths(t *testing.T) {
	for _, path := range []string{"/", "/products", "/cart", "/login", "/support"} {
		d := Guard(path, false)
		if !d.Allowed {
			t.Errorf("Guard(%q, no session) denied a public path", path)
		}
	}
}

func TestGuardDeniesProtectedPathsWithoutSession(t *testing.T) {
	for _, path := range []string{"/checkout", "/profile", "/wallet", "/refill-reminders"} {
		d := Guard(path, false)
		if d.Allowed {
			t.Errorf("Guard(%q, no session) allowed a protected path", path)
		}
		if d.RedirectTo != "/login" {
			t.Errorf("Guard(%q) redirect = %q, want /login", path, d.RedirectTo)
		}
		if d.Message == "" {
			t.Errorf("Guard(%q) returned no message", path)
		}
	}
}

func TestGuardAllowsProtectedPathsWithSession(t *testing.T) {
	d := Guard("/checkout", true)
	if !d.Allowed {
		t.Error("Guard(/checkout, session) denied")
	}
}

func TestGuardStripsQueryBeforeMatching(t *testing.T) {
	d := Guard("/checkout?step=2", false)
	if d.Allowed {
		t.Error("guard must strip the query before matching the protected set")
	}
}

func TestGuardIsExactMatch(t *testing.T) {
	// A nested path under a protected prefix is not itself protected.
	d := Guard("/checkout/extra", false)
	if !d.Allowed {
		t.Error("guard must match whole paths, not prefixes")
	}
}
