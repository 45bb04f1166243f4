package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCatalog honors the CatalogReader ordering contract: featured first,
// stock descending, excludeIDs never returned.
type fakeCatalog struct {
	products []Product

	errSearch   error
	errCategory error
	errFeatured error
	errGetMany  error
}

func (f *fakeCatalog) filtered(excludeIDs []string, keep func(Product) bool) []Product {
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	var out []Product
	for _, p := range f.products {
		if _, skip := excluded[p.ID]; skip {
			continue
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFeatured != out[j].IsFeatured {
			return out[i].IsFeatured
		}
		return out[i].StockQuantity > out[j].StockQuantity
	})
	return out
}

func (f *fakeCatalog) SearchToken(ctx context.Context, token string, excludeIDs []string) ([]Product, error) {
	if f.errSearch != nil {
		return nil, f.errSearch
	}
	return f.filtered(excludeIDs, func(p Product) bool {
		return strings.Contains(p.Name, token) ||
			strings.Contains(p.Brand, token) ||
			strings.Contains(p.Model, token)
	}), nil
}

func (f *fakeCatalog) ListByCategory(ctx context.Context, categoryID int64, excludeIDs []string) ([]Product, error) {
	if f.errCategory != nil {
		return nil, f.errCategory
	}
	return f.filtered(excludeIDs, func(p Product) bool {
		return p.CategoryID == categoryID
	}), nil
}

func (f *fakeCatalog) ListFeatured(ctx context.Context, excludeIDs []string, limit int) ([]Product, error) {
	if f.errFeatured != nil {
		return nil, f.errFeatured
	}
	out := f.filtered(excludeIDs, func(p Product) bool { return p.IsFeatured })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StockQuantity > out[j].StockQuantity
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCatalog) GetMany(ctx context.Context, ids []string) ([]Product, error) {
	if f.errGetMany != nil {
		return nil, f.errGetMany
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []Product
	for _, p := range f.products {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCart struct {
	ids []string
	err error
}

func (f fakeCart) ActiveProductIDs(ctx context.Context, userID string) ([]string, error) {
	return f.ids, f.err
}

func storeCatalog() *fakeCatalog {
	return &fakeCatalog{products: []Product{
		{ID: "2", Name: "Samsung Galaxy S24 Ultra", Brand: "Samsung", Model: "SM-S928", CategoryID: 1, StockQuantity: 25, IsFeatured: true},
		{ID: "3", Name: "Samsung Galaxy S23", Brand: "Samsung", Model: "SM-S911", CategoryID: 1, StockQuantity: 50, IsFeatured: true},
		{ID: "4", Name: "Galaxy Buds 3 Pro", Brand: "Samsung", CategoryID: 6, StockQuantity: 40},
		{ID: "5", Name: "S24 Ultra Clear Case", Brand: "Spigen", CategoryID: 4, StockQuantity: 30},
		{ID: "6", Name: "Universal 65W Charger", Brand: "Anker", CategoryID: 5, StockQuantity: 80, IsFeatured: true},
		{ID: "7", Name: "iPhone 15 Silicone Case", Brand: "Apple", CategoryID: 4, StockQuantity: 60},
		{ID: "8", Name: "ThinkPad X1 Carbon", Brand: "Lenovo", CategoryID: 2, StockQuantity: 10, IsFeatured: true},
		{ID: "9", Name: "MX Master 3S", Brand: "Logitech", CategoryID: 7, StockQuantity: 90, IsFeatured: true},
	}}
}

func galaxyCartInput() Input {
	return Input{
		ProductIDs:   []string{"2"},
		ProductNames: []string{"Samsung Galaxy S24 Ultra"},
		Brands:       []string{"Samsung"},
		CategoryIDs:  []int64{1},
	}
}

func resultIDs(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestRecommendGalaxyCart(t *testing.T) {
	engine := NewEngine(storeCatalog(), fakeCart{}, nil)

	got := engine.Recommend(context.Background(), galaxyCartInput(), 5)
	ids := resultIDs(got)

	require.LessOrEqual(t, len(ids), 5)
	require.NotContains(t, ids, "2", "cart product must never be recommended")

	seen := make(map[string]struct{})
	for _, id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}

	// Rule 1 owns the first two slots: name/brand matches for the cart's
	// key words, featured first.
	require.Equal(t, []string{"3", "4"}, ids[:2])

	// Rule 2 contributes the compatible case and the universal charger
	// before the featured fallback does anything.
	require.Equal(t, "5", ids[2], "S24-keyword case should pass the compatibility filter")
	require.Equal(t, "6", ids[3], "universal charger should pass via the catch-all")

	// The Apple-branded case shares no brand or key word with the cart.
	require.NotContains(t, ids, "7")

	// Rule 3 fills the last slot with the best remaining featured product.
	require.Equal(t, "9", ids[4])
}

func TestRecommendEmptyCartFallsToFeatured(t *testing.T) {
	engine := NewEngine(storeCatalog(), fakeCart{}, nil)

	got := engine.Recommend(context.Background(), Input{}, 3)

	// Exactly the top featured products by stock descending.
	require.Equal(t, []string{"9", "6", "3"}, resultIDs(got))
}

func TestRecommendBudget(t *testing.T) {
	engine := NewEngine(storeCatalog(), fakeCart{}, nil)

	t.Run("never exceeds maxResults", func(t *testing.T) {
		got := engine.Recommend(context.Background(), galaxyCartInput(), 2)
		require.Len(t, got, 2)
	})

	t.Run("maxResults 1 skips rule 1 entirely", func(t *testing.T) {
		// Integer division gives rule 1 a zero budget.
		got := engine.Recommend(context.Background(), galaxyCartInput(), 1)
		require.Len(t, got, 1)
		require.Equal(t, "5", got[0].ID, "first slot should come from rule 2")
	})

	t.Run("zero maxResults", func(t *testing.T) {
		require.Empty(t, engine.Recommend(context.Background(), galaxyCartInput(), 0))
	})
}

func TestRecommendNoBrandsSkipsCompatibilityFilter(t *testing.T) {
	engine := NewEngine(storeCatalog(), fakeCart{}, nil)

	in := Input{
		ProductIDs:   []string{"2"},
		ProductNames: []string{"Handset"},
		CategoryIDs:  []int64{1},
	}
	got := engine.Recommend(context.Background(), in, 8)

	// Without known cart brands every complementary candidate survives,
	// including the otherwise-incompatible Apple case.
	require.Contains(t, resultIDs(got), "7")
}

func TestRecommendDegradesOnCatalogFailure(t *testing.T) {
	t.Run("all rules failing -> empty list, no error", func(t *testing.T) {
		catalog := storeCatalog()
		catalog.errSearch = errors.New("catalog down")
		catalog.errCategory = errors.New("catalog down")
		catalog.errFeatured = errors.New("catalog down")
		engine := NewEngine(catalog, fakeCart{}, nil)

		require.Empty(t, engine.Recommend(context.Background(), galaxyCartInput(), 5))
	})

	t.Run("one rule failing -> later rules still fill", func(t *testing.T) {
		catalog := storeCatalog()
		catalog.errSearch = errors.New("search index down")
		engine := NewEngine(catalog, fakeCart{}, nil)

		got := engine.Recommend(context.Background(), galaxyCartInput(), 5)
		require.NotEmpty(t, got)
		require.NotContains(t, resultIDs(got), "2")
	})
}

func TestRecommendForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves input from the live cart", func(t *testing.T) {
		engine := NewEngine(storeCatalog(), fakeCart{ids: []string{"2"}}, nil)

		got := engine.RecommendForUser(ctx, "u1", 5)
		ids := resultIDs(got)
		require.NotContains(t, ids, "2")
		require.Contains(t, ids, "3", "name similarity should fire from resolved cart names")
	})

	t.Run("no cart -> featured only", func(t *testing.T) {
		engine := NewEngine(storeCatalog(), fakeCart{}, nil)

		got := engine.RecommendForUser(ctx, "u1", 3)
		require.Equal(t, []string{"9", "6", "3"}, resultIDs(got))
	})

	t.Run("cart read failure -> featured only, no error", func(t *testing.T) {
		engine := NewEngine(storeCatalog(), fakeCart{err: errors.New("cart store down")}, nil)

		got := engine.RecommendForUser(ctx, "u1", 3)
		require.Equal(t, []string{"9", "6", "3"}, resultIDs(got))
	})

	t.Run("product resolution failure keeps exclusions", func(t *testing.T) {
		catalog := storeCatalog()
		catalog.errGetMany = errors.New("catalog down")
		engine := NewEngine(catalog, fakeCart{ids: []string{"9"}}, nil)

		got := engine.RecommendForUser(ctx, "u1", 5)
		require.NotContains(t, resultIDs(got), "9")
	})
}

func TestCompatibleWithCart(t *testing.T) {
	words := map[string]struct{}{"galaxy": {}, "s24": {}, "ultra": {}}

	cases := []struct {
		name   string
		p      Product
		brands []string
		want   bool
	}{
		{"brand containment either direction", Product{Name: "Buds", Brand: "Samsung Electronics"}, []string{"Samsung"}, true},
		{"cart brand contains candidate brand", Product{Name: "Buds", Brand: "Sam"}, []string{"Samsung"}, true},
		{"brand mentioned in name", Product{Name: "Charger for Samsung phones", Brand: "Anker"}, []string{"Samsung"}, true},
		{"shared key word", Product{Name: "S24 Tempered Glass", Brand: "Spigen"}, []string{"Samsung"}, true},
		{"universal catch-all", Product{Name: "Universal Car Mount", Brand: "Baseus"}, []string{"Samsung"}, true},
		{"compatible catch-all", Product{Name: "Stand compatible with most tablets", Brand: "UGREEN"}, []string{"Samsung"}, true},
		{"all phones catch-all", Product{Name: "Grip ring for all phones", Brand: "PopSockets"}, []string{"Samsung"}, true},
		{"nothing shared", Product{Name: "iPhone 15 Silicone Case", Brand: "Apple"}, []string{"Samsung"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, compatibleWithCart(c.p, c.brands, words))
		})
	}
}
