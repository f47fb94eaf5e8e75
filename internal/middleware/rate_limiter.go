package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/HelloMeow10/project-root-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana is one fixed counting window for a single key.
type ventana struct {
	cuenta int
	hasta  time.Time
	mu     sync.Mutex
}

// limiter owns a keyspace of windows. Each surface (login, checkout, general
// API) gets its own limiter so a burst on one cannot starve another.
type limiter struct {
	limite  int
	periodo time.Duration
	mensaje string

	mu       sync.Mutex
	ventanas map[string]*ventana
}

func newLimiter(limite int, periodo time.Duration, mensaje string) *limiter {
	l := &limiter{
		limite:   limite,
		periodo:  periodo,
		mensaje:  mensaje,
		ventanas: make(map[string]*ventana),
	}
	registrarParaPurga(l)
	return l
}

func (l *limiter) permitir(clave string) (bool, time.Time) {
	l.mu.Lock()
	v, ok := l.ventanas[clave]
	if !ok {
		v = &ventana{}
		l.ventanas[clave] = v
	}
	l.mu.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	ahora := time.Now()
	if ahora.After(v.hasta) {
		v.cuenta = 0
		v.hasta = ahora.Add(l.periodo)
	}
	v.cuenta++
	return v.cuenta <= l.limite, v.hasta
}

func (l *limiter) handler(clave func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, hasta := l.permitir(clave(c))
		if !ok {
			c.Header("Retry-After", hasta.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

func porIP(c *gin.Context) string { return c.ClientIP() }

// porCuenta keys by the authenticated subject, so customers behind a shared
// NAT are throttled individually. Unauthenticated requests fall back to the IP.
func porCuenta(c *gin.Context) string {
	if id, ok := SubjectID(c); ok {
		return id.String()
	}
	return c.ClientIP()
}

var (
	loginLimiter = newLimiter(20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.")
	// Checkout and payment hold stock and hit the payment gateway; 12 attempts
	// per minute is generous for a person and stops a misbehaving client from
	// hammering either.
	checkoutLimiter = newLimiter(12, time.Minute,
		"Demasiados intentos de compra. Esperá un momento antes de reintentar.")
)

// LoginRateLimiter throttles credential guessing on the login endpoints,
// per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handler(porIP)
}

// CheckoutRateLimiter throttles order creation and payment attempts, per
// customer. Runs after JWTAuth.
func CheckoutRateLimiter() gin.HandlerFunc {
	return checkoutLimiter.handler(porCuenta)
}

// APIRateLimiter is the coarse per-IP ceiling applied to all traffic.
func APIRateLimiter(limite int, periodo time.Duration) gin.HandlerFunc {
	return newLimiter(limite, periodo,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler(porIP)
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically drops expired windows so keys that never return do not
// accumulate.

const purgeInterval = 5 * time.Minute

var (
	purgaMu    sync.Mutex
	purgaLista []*limiter
	purgaOnce  sync.Once
)

func registrarParaPurga(l *limiter) {
	purgaMu.Lock()
	purgaLista = append(purgaLista, l)
	purgaMu.Unlock()
	purgaOnce.Do(func() { go purgarVentanasVencidas() })
}

func purgarVentanasVencidas() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		ahora := time.Now()

		purgaMu.Lock()
		limiters := append([]*limiter(nil), purgaLista...)
		purgaMu.Unlock()

		purgadas := 0
		for _, l := range limiters {
			l.mu.Lock()
			for clave, v := range l.ventanas {
				v.mu.Lock()
				if ahora.After(v.hasta) {
					delete(l.ventanas, clave)
					purgadas++
				}
				v.mu.Unlock()
			}
			l.mu.Unlock()
		}

		if purgadas > 0 {
			log.Debug().
				Int("ventanas_purgadas", purgadas).
				Msg("rate limiter: ventanas vencidas eliminadas")
		}
	}
}
