package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HelloMeow10/project-root-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// conCheckoutLimitado builds a minimal engine: claims come from the X-Cliente
// header, the limiter sits in front of a handler that answers 204.
func conCheckoutLimitado() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/pedidos", func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{
			Tipo:             "cliente",
			RegisteredClaims: jwt.RegisteredClaims{Subject: c.GetHeader("X-Cliente")},
		})
	}, middleware.CheckoutRateLimiter(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func dispararCheckout(r *gin.Engine, clienteID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pedidos", nil)
	req.Header.Set("X-Cliente", clienteID)
	r.ServeHTTP(w, req)
	return w
}

// El límite de compra es por cliente: agotar la ventana de uno no afecta a
// otro detrás de la misma IP.
func TestCheckoutRateLimiterPorCliente(t *testing.T) {
	r := conCheckoutLimitado()
	ana := uuid.NewString()
	bruno := uuid.NewString()

	for i := 0; i < 12; i++ {
		assert.Equal(t, http.StatusNoContent, dispararCheckout(r, ana).Code)
	}

	bloqueada := dispararCheckout(r, ana)
	assert.Equal(t, http.StatusTooManyRequests, bloqueada.Code)
	assert.NotEmpty(t, bloqueada.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, dispararCheckout(r, bruno).Code)
}
