package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	cartapp "github.com/dwikikusuma/fixshop/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/fixshop/internal/checkout/app"
)

func TestStatusFromError(t *testing.T) {
	t.Run("invalid quantity -> 400", func(t *testing.T) {
		status, code := StatusFromError(cartapp.ErrInvalidQuantity)
		if status != http.StatusBadRequest || code != "INVALID_ARGUMENT" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("cart not found -> 404", func(t *testing.T) {
		status, code := StatusFromError(cartapp.ErrNotFound)
		if status != http.StatusNotFound || code != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("empty cart checkout -> 409", func(t *testing.T) {
		status, code := StatusFromError(checkoutapp.ErrEmptyCart)
		if status != http.StatusConflict || code != "INVALID_STATE" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("wrapped sentinel still maps", func(t *testing.T) {
		err := fmt.Errorf("update order: %w", checkoutapp.ErrBadTransition)
		status, code := StatusFromError(err)
		if status != http.StatusConflict || code != "INVALID_STATE" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("infrastructure error -> 500", func(t *testing.T) {
		status, code := StatusFromError(errors.New("connection refused"))
		if status != http.StatusInternalServerError || code != "INTERNAL" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})
}
