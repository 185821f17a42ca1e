package catalog

import (
	"testing"

	"mediswift/internal/types"
)

func sampleProducts() []types.Product {
	return []types.Product{
		{ID: "1", Name: "Paracetamol 500mg", Brand: "Calpol", Category: "Tablet", MRP: 30, DiscountPrice: 25, SaltComposition: "Paracetamol", Featured: true},
		{ID: "2", Name: "Amoxicillin 250mg", Brand: "Mox", Category: "Capsule", MRP: 120, DiscountPrice: 95, SaltComposition: "Amoxicillin", RequiresPrescription: true},
		{ID: "3", Name: "Vitamin C Chewable", Brand: "Limcee", Category: "Tablet", MRP: 100, DiscountPrice: 80, SaltComposition: "Ascorbic Acid", Featured: true},
		{ID: "4", Name: "Cough Syrup", Brand: "Benadryl", Category: "Syrup", MRP: 150, DiscountPrice: 150, SaltComposition: "Diphenhydramine", RequiresPrescription: true},
	}
}

func ids(products []types.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyZeroFilterMatchesEverything(t *testing.T) {
	got := Apply(sampleProducts(), Filter{})
	if len(got) != 4 {
		t.Fatalf("got %d products, want 4", len(got))
	}
}

func TestApplySearchMatchesNameBrandAndSalt(t *testing.T) {
	products := sampleProducts()

	byName := Apply(products, Filter{Search: "paracet"})
	if len(byName) != 1 || byName[0].ID != "1" {
		t.Errorf("search by name: %v", ids(byName))
	}

	byBrand := Apply(products, Filter{Search: "limcee"})
	if len(byBrand) != 1 || byBrand[0].ID != "3" {
		t.Errorf("search by brand: %v", ids(byBrand))
	}

	bySalt := Apply(products, Filter{Search: "ascorbic"})
	if len(bySalt) != 1 || bySalt[0].ID != "3" {
		t.Errorf("search by salt: %v", ids(bySalt))
	}
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	got := Apply(sampleProducts(), Filter{Search: "PARACETAMOL"})
	if len(got) != 1 {
		t.Errorf("uppercase search returned %d products, want 1", len(got))
	}
}

func TestApplyFiltersCompose(t *testing.T) {
	f := Filter{Category: "Tablet", Prescription: PrescriptionNotRequired}
	got := Apply(sampleProducts(), f)
	if len(got) != 2 {
		t.Fatalf("composed filter returned %v", ids(got))
	}
}

func TestApplyPrescriptionFilter(t *testing.T) {
	rx := Apply(sampleProducts(), Filter{Prescription: PrescriptionRequired})
	if len(rx) != 2 {
		t.Errorf("rx-only: %v", ids(rx))
	}
	otc := Apply(sampleProducts(), Filter{Prescription: PrescriptionNotRequired})
	if len(otc) != 2 {
		t.Errorf("otc-only: %v", ids(otc))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	f := Filter{Category: "Tablet"}
	once := Apply(sampleProducts(), f)
	twice := Apply(once, f)
	if len(once) != len(twice) {
		t.Errorf("reapplying the same filter changed the result: %d vs %d", len(once), len(twice))
	}
}

func TestSortPriceAsc(t *testing.T) {
	products := sampleProducts()
	Sort(products, SortPriceAsc)
	for i := 1; i < len(products); i++ {
		if products[i-1].DiscountPrice > products[i].DiscountPrice {
			t.Fatalf("not sorted ascending at %d: %v", i, ids(products))
		}
	}
}

func TestSortDiscountDesc(t *testing.T) {
	products := sampleProducts()
	Sort(products, SortDiscountDesc)
	for i := 1; i < len(products); i++ {
		if products[i-1].DiscountFraction() < products[i].DiscountFraction() {
			t.Fatalf("not sorted by discount at %d: %v", i, ids(products))
		}
	}
}

func TestSortDoesNotDropProducts(t *testing.T) {
	products := sampleProducts()
	Sort(products, SortNameAsc)
	if len(products) != 4 {
		t.Fatalf("sort changed length to %d", len(products))
	}
}

func TestFeaturedHonorsCap(t *testing.T) {
	got := Featured(sampleProducts(), 1)
	if len(got) != 1 || !got[0].Featured {
		t.Errorf("Featured cap: %v", ids(got))
	}
}

func TestTopDiscountsExcludesFullPrice(t *testing.T) {
	got := TopDiscounts(sampleProducts(), 10)
	for _, p := range got {
		if p.DiscountPrice >= p.MRP {
			t.Errorf("full-price product %s in discounts", p.ID)
		}
	}
	if len(got) != 3 {
		t.Errorf("got %d discounted products, want 3", len(got))
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	got := Categories(sampleProducts())
	want := []string{"Tablet", "Capsule", "Syrup"}
	if len(got) != len(want) {
		t.Fatalf("categories = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories = %v, want %v", got, want)
		}
	}
}

func TestFindByID(t *testing.T) {
	p, ok := FindByID(sampleProducts(), "2")
	if !ok || p.Name != "Amoxicillin 250mg" {
		t.Errorf("FindByID(2) = %v, %v", p.Name, ok)
	}
	if _, ok := FindByID(sampleProducts(), "nope"); ok {
		t.Error("FindByID found a product that does not exist")
	}
}
