package app

import (
	"context"
	"log/slog"
)

// Input is what the rules know about the cart being recommended against.
type Input struct {
	ProductIDs   []string
	ProductNames []string
	Brands       []string
	CategoryIDs  []int64
}

// Engine produces ranked, deduplicated product suggestions from three
// cascading rules. It is best-effort by contract: it logs and degrades on
// any catalog failure, and never returns an error to its caller.
type Engine struct {
	catalog CatalogReader
	cart    CartReader
	log     *slog.Logger
}

func NewEngine(catalog CatalogReader, cart CartReader, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		catalog: catalog,
		cart:    cart,
		log:     log,
	}
}

// Recommend runs the rules in fixed priority order. Rule 1 (name
// similarity) gets half the budget, rule 2 (complementary categories) the
// remainder, rule 3 (featured) whatever is still open. Cart products never
// appear in the output and no id appears twice.
func (e *Engine) Recommend(ctx context.Context, in Input, maxResults int) []Product {
	if maxResults <= 0 {
		return nil
	}

	picked := newPickSet(in.ProductIDs)

	out := e.byNameSimilarity(ctx, in, picked, maxResults/2)
	out = append(out, e.byComplementaryCategory(ctx, in, picked, maxResults-len(out))...)
	out = append(out, e.byFeatured(ctx, picked, maxResults-len(out))...)

	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// RecommendForUser resolves the rule input from the user's live active cart
// and delegates to Recommend. No cart, an empty cart, or a failing cart read
// all fall through to the featured rule with an empty exclusion set.
func (e *Engine) RecommendForUser(ctx context.Context, userID string, maxResults int) []Product {
	ids, err := e.cart.ActiveProductIDs(ctx, userID)
	if err != nil {
		e.log.Warn("cart read failed, recommending featured only",
			slog.String("user_id", userID), slog.Any("err", err))
		ids = nil
	}
	if len(ids) == 0 {
		return e.Recommend(ctx, Input{}, maxResults)
	}

	products, err := e.catalog.GetMany(ctx, ids)
	if err != nil {
		// Keep the exclusions so we never recommend what is already in the
		// cart, even when we cannot resolve names or categories.
		e.log.Warn("cart product resolution failed",
			slog.String("user_id", userID), slog.Any("err", err))
		return e.Recommend(ctx, Input{ProductIDs: ids}, maxResults)
	}

	in := Input{ProductIDs: ids}
	seenCategory := make(map[int64]struct{})
	seenBrand := make(map[string]struct{})
	for _, p := range products {
		in.ProductNames = append(in.ProductNames, p.Name)
		if p.Brand != "" {
			if _, ok := seenBrand[p.Brand]; !ok {
				seenBrand[p.Brand] = struct{}{}
				in.Brands = append(in.Brands, p.Brand)
			}
		}
		if _, ok := seenCategory[p.CategoryID]; !ok {
			seenCategory[p.CategoryID] = struct{}{}
			in.CategoryIDs = append(in.CategoryIDs, p.CategoryID)
		}
	}

	return e.Recommend(ctx, in, maxResults)
}
