package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/fixshop/internal/recommend/domain"
)

// pickSet tracks every product id already spoken for: the cart's own
// products plus everything an earlier rule picked. Threading it through the
// rules is what makes the final list duplicate-free.
type pickSet map[string]struct{}

func newPickSet(ids []string) pickSet {
	s := make(pickSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s pickSet) has(id string) bool { _, ok := s[id]; return ok }
func (s pickSet) add(id string)      { s[id] = struct{}{} }

func (s pickSet) ids() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// byNameSimilarity walks the key words of every cart product name and
// collects catalog matches (case-sensitive substring on name, brand or
// model) until the budget runs out.
func (e *Engine) byNameSimilarity(ctx context.Context, in Input, picked pickSet, budget int) []Product {
	if budget <= 0 {
		return nil
	}

	var out []Product
	for _, name := range in.ProductNames {
		for _, kw := range domain.KeyWords(name) {
			matches, err := e.catalog.SearchToken(ctx, kw, in.ProductIDs)
			if err != nil {
				e.log.Warn("name-similarity lookup failed",
					slog.String("keyword", kw), slog.Any("err", err))
				continue
			}
			for _, p := range matches {
				if picked.has(p.ID) {
					continue
				}
				picked.add(p.ID)
				out = append(out, p)
				if len(out) == budget {
					return out
				}
			}
		}
	}
	return out
}

// byComplementaryCategory pulls products from categories the table pairs
// with the cart's categories, keeping only candidates that look compatible
// with what is already in the cart. When the cart carries no known brands
// the compatibility filter is skipped entirely.
func (e *Engine) byComplementaryCategory(ctx context.Context, in Input, picked pickSet, budget int) []Product {
	if budget <= 0 {
		return nil
	}

	cartWords := make(map[string]struct{})
	for _, name := range in.ProductNames {
		for _, kw := range domain.KeyWords(name) {
			cartWords[strings.ToLower(kw)] = struct{}{}
		}
	}

	var out []Product
	for _, categoryID := range in.CategoryIDs {
		for _, comp := range domain.ComplementaryCategories(categoryID) {
			candidates, err := e.catalog.ListByCategory(ctx, comp, in.ProductIDs)
			if err != nil {
				e.log.Warn("complementary-category lookup failed",
					slog.Int64("category_id", comp), slog.Any("err", err))
				continue
			}
			for _, p := range candidates {
				if picked.has(p.ID) {
					continue
				}
				if len(in.Brands) > 0 && !compatibleWithCart(p, in.Brands, cartWords) {
					continue
				}
				picked.add(p.ID)
				out = append(out, p)
				if len(out) == budget {
					return out
				}
			}
		}
	}
	return out
}

// byFeatured fills whatever budget remains with featured products, stock
// descending.
func (e *Engine) byFeatured(ctx context.Context, picked pickSet, budget int) []Product {
	if budget <= 0 {
		return nil
	}

	candidates, err := e.catalog.ListFeatured(ctx, picked.ids(), budget)
	if err != nil {
		e.log.Warn("featured fallback lookup failed", slog.Any("err", err))
		return nil
	}

	var out []Product
	for _, p := range candidates {
		if picked.has(p.ID) {
			continue
		}
		picked.add(p.ID)
		out = append(out, p)
		if len(out) == budget {
			break
		}
	}
	return out
}

// catchAll markers flag brand-agnostic accessories.
var catchAll = []string{"universal", "compatible", "all phones"}

// compatibleWithCart is the coarse heuristic deciding whether a candidate
// from a complementary category belongs next to this cart:
// (a) candidate brand and a cart brand contain each other (either direction,
// case-insensitive), (b) the candidate name mentions a cart brand, (c) the
// candidate name shares a key word with a cart product name, or (d) the
// candidate name carries a catch-all marker.
func compatibleWithCart(p Product, cartBrands []string, cartWords map[string]struct{}) bool {
	name := strings.ToLower(p.Name)
	brand := strings.ToLower(p.Brand)

	for _, b := range cartBrands {
		cb := strings.ToLower(strings.TrimSpace(b))
		if cb == "" {
			continue
		}
		if brand != "" && (strings.Contains(brand, cb) || strings.Contains(cb, brand)) {
			return true
		}
		if strings.Contains(name, cb) {
			return true
		}
	}

	for _, kw := range domain.KeyWords(p.Name) {
		if _, ok := cartWords[strings.ToLower(kw)]; ok {
			return true
		}
	}

	for _, marker := range catchAll {
		if strings.Contains(name, marker) {
			return true
		}
	}

	return false
}
