package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/dwikikusuma/fixshop/internal/cart/app"
	catalogapp "github.com/dwikikusuma/fixshop/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/fixshop/internal/checkout/app"
	userapp "github.com/dwikikusuma/fixshop/internal/user/app"
)

// StatusFromError maps domain sentinels onto HTTP. Anything unrecognized is
// an infrastructure failure and stays a 500.
func StatusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, cartapp.ErrInvalidQuantity),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT"

	case errors.Is(err, cartapp.ErrNotFound),
		errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, checkoutapp.ErrOrderNotFound),
		errors.Is(err, userapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, checkoutapp.ErrEmptyCart),
		errors.Is(err, checkoutapp.ErrBadTransition):
		return http.StatusConflict, "INVALID_STATE"
	}

	return http.StatusInternalServerError, "INTERNAL"
}

// Error writes the canonical error body.
func Error(c *gin.Context, err error) {
	status, code := StatusFromError(err)
	body := gin.H{"code": code}
	if status != http.StatusInternalServerError {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
