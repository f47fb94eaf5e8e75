package router

import (
	"time"

	"github.com/HelloMeow10/project-root-sub000/internal/config"
	"github.com/HelloMeow10/project-root-sub000/internal/handler"
	"github.com/HelloMeow10/project-root-sub000/internal/infra"
	"github.com/HelloMeow10/project-root-sub000/internal/middleware"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"
	"github.com/HelloMeow10/project-root-sub000/internal/service"
	"github.com/HelloMeow10/project-root-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, pagosCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.APIRateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	carritoRepo := repository.NewCarritoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	vueloRepo := repository.NewVueloRepository(db)
	direccionRepo := repository.NewDireccionRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(clienteRepo, usuarioRepo, dispatcher, cfg)
	productoSvc := service.NewProductoService(productoRepo)
	carritoSvc := service.NewCarritoService(carritoRepo, productoRepo)
	vueloSvc := service.NewVueloService(vueloRepo, productoRepo, pedidoRepo)
	checkoutSvc := service.NewCheckoutService(carritoRepo, productoRepo, pedidoRepo, vueloRepo, direccionRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, ventaRepo)
	direccionSvc := service.NewDireccionService(direccionRepo)

	pasarela := infra.NewStripeClient(cfg.StripeSecretKey)
	pagoSvc := service.NewPagoService(pedidoRepo, clienteRepo, pedidoSvc, pasarela, pagosCB, dispatcher, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	vuelosH := handler.NewVuelosHandler(vueloSvc)
	pedidosH := handler.NewPedidosHandler(checkoutSvc, pedidoSvc)
	direccionesH := handler.NewDireccionesHandler(direccionSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, pagosCB))
	r.GET("/metrics", middleware.MetricsHandler())

	api := r.Group("/api")
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/registro", authH.RegistrarCliente)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.LoginCliente)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/verificar-email", authH.VerificarEmail)
		auth.POST("/reenviar-verificacion", jwtMW, middleware.RequireCliente(), authH.ReenviarVerificacion)
		auth.GET("/perfil", jwtMW, middleware.RequireCliente(), authH.Perfil)
	}

	// Catalog browsing — public
	api.GET("/productos", productosH.Listar)
	api.GET("/productos/:id", productosH.Obtener)
	vuelos := api.Group("/vuelos")
	{
		vuelos.GET("/clases", vuelosH.ListarClases)
		vuelos.GET("/equipaje", vuelosH.ListarOpcionesEquipaje)
		vuelos.GET("/:id/asientos", vuelosH.MapaAsientos)
	}

	// Cart — any logged-in customer
	carrito := api.Group("/carrito", jwtMW, middleware.RequireCliente())
	{
		carrito.GET("", carritoH.Obtener)
		carrito.POST("/items", carritoH.AgregarItem)
		carrito.PUT("/items/:id", carritoH.ActualizarItem)
		carrito.DELETE("/items/:id", carritoH.QuitarItem)
	}

	// Billing addresses — owner only
	direcciones := api.Group("/direcciones", jwtMW, middleware.RequireCliente())
	{
		direcciones.GET("", direccionesH.Listar)
		direcciones.POST("", direccionesH.Crear)
		direcciones.PUT("/:id", direccionesH.Actualizar)
		direcciones.DELETE("/:id", direccionesH.Eliminar)
	}

	// Orders. Checkout and payment demand a verified email; reads are open to
	// any authenticated account (customers see only their own orders).
	pedidos := api.Group("/pedidos", jwtMW)
	{
		pedidos.POST("", middleware.RequireClienteVerificado(), middleware.CheckoutRateLimiter(), pedidosH.CrearPedido)
		pedidos.GET("", pedidosH.ListarPedidos)
		pedidos.GET("/:id", pedidosH.ObtenerPedido)
		pedidos.POST("/:id/cancelar", middleware.RequireCliente(), pedidosH.CancelarPedido)
		pedidos.POST("/:id/pagar", middleware.RequireClienteVerificado(), middleware.CheckoutRateLimiter(), pagosH.PagarPedido)
		pedidos.PUT("/:id", middleware.RequireRole("administrador", "operador"), pedidosH.ActualizarPedido)
	}

	// Back-office
	admin := api.Group("/admin")
	{
		admin.POST("/login", middleware.LoginRateLimiter(), authH.LoginUsuario)

		usuarios := admin.Group("/usuarios", jwtMW, middleware.RequireRole("administrador"))
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.POST("/:id/reactivar", authH.ReactivarUsuario)
		}
		admin.GET("/roles", jwtMW, middleware.RequireRole("administrador"), authH.ListarRoles)
	}

	// Catalog writes — administrador only
	prods := api.Group("/productos", jwtMW, middleware.RequireRole("administrador"))
	{
		prods.POST("", productosH.Crear)
		prods.PUT("/:id", productosH.Actualizar)
		prods.DELETE("/:id", productosH.Desactivar)
		prods.POST("/:id/reactivar", productosH.Reactivar)
		prods.POST("/:id/componentes", productosH.AgregarComponente)
		prods.DELETE("/:id/componentes/:productoId", productosH.QuitarComponente)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
