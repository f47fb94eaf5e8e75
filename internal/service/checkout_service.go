package service

import (
	"context"
	"fmt"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService converts a customer's cart into an order: it validates and
// prices every line (including flight add-ons), creates the Pedido with all
// nested selections, decrements stock, and empties the cart — atomically.
type CheckoutService interface {
	CrearPedidoDesdeCarrito(ctx context.Context, clienteID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
}

type checkoutService struct {
	carritoRepo   repository.CarritoRepository
	productoRepo  repository.ProductoRepository
	pedidoRepo    repository.PedidoRepository
	vueloRepo     repository.VueloRepository
	direccionRepo repository.DireccionRepository
}

func NewCheckoutService(
	carritoRepo repository.CarritoRepository,
	productoRepo repository.ProductoRepository,
	pedidoRepo repository.PedidoRepository,
	vueloRepo repository.VueloRepository,
	direccionRepo repository.DireccionRepository,
) CheckoutService {
	return &checkoutService{
		carritoRepo:   carritoRepo,
		productoRepo:  productoRepo,
		pedidoRepo:    pedidoRepo,
		vueloRepo:     vueloRepo,
		direccionRepo: direccionRepo,
	}
}

// lineaResuelta is one cart line after validation and pricing, ready to be
// materialized as an ItemPedido inside the transaction.
type lineaResuelta struct {
	producto       *model.Producto
	cantidad       int
	precioBase     decimal.Decimal // product unit price snapshot
	precioEfectivo decimal.Decimal // base × multiplicador + asiento + equipaje
	precioTotal    decimal.Decimal // precioEfectivo × cantidad
	tipoAsientoID  *uuid.UUID
	asiento        *model.AsientoFisico
	equipaje       []equipajeResuelto
}

type equipajeResuelto struct {
	opcion   *model.OpcionEquipaje
	cantidad int
	precio   decimal.Decimal // per-unit × cantidad
}

// ── CrearPedidoDesdeCarrito ──────────────────────────────────────────────────
// Full ACID checkout:
//   1. Load cart with items and flight detail; empty cart fails fast.
//   2. Resolve each requested line against the cart, validate activity/stock,
//      price flight add-ons (class multiplier, seat, baggage). Seat occupancy
//      gets a preliminary check here, outside the transaction.
//   3. BEGIN TX: authoritative seat recheck, create pedido + items +
//      selections, decrement finite stock, empty the cart.
//   4. COMMIT and return the fully loaded pedido.
// Any failure inside the transaction rolls everything back: no stock moves,
// no cart item disappears, no order row survives.

func (s *checkoutService) CrearPedidoDesdeCarrito(ctx context.Context, clienteID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	carrito, err := s.carritoRepo.FindByClienteID(ctx, clienteID)
	if err != nil || len(carrito.Items) == 0 {
		return nil, ErrCarritoVacio
	}

	porProducto := make(map[uuid.UUID]*model.ItemCarrito, len(carrito.Items))
	for i := range carrito.Items {
		porProducto[carrito.Items[i].ProductoID] = &carrito.Items[i]
	}

	var direccionID *uuid.UUID
	if req.DireccionFacturacionID != nil {
		id, err := uuid.Parse(*req.DireccionFacturacionID)
		if err != nil {
			return nil, fmt.Errorf("id_direccion_facturacion inválido: %w", err)
		}
		dir, err := s.direccionRepo.FindByID(ctx, id)
		if err != nil || dir.ClienteID != clienteID {
			return nil, fmt.Errorf("Dirección de facturación no encontrada")
		}
		direccionID = &id
	}

	resolved := make([]lineaResuelta, 0, len(req.Items))
	total := decimal.Zero

	for _, linea := range req.Items {
		pid, err := uuid.Parse(linea.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("id_producto inválido: %w", err)
		}
		item, ok := porProducto[pid]
		if !ok {
			return nil, fmt.Errorf("El producto %s no se encuentra en el carrito", linea.ProductoID)
		}
		p := item.Producto
		if p == nil {
			return nil, fmt.Errorf("El producto %s no se encuentra en el carrito", linea.ProductoID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("El producto '%s' está inactivo y no puede comprarse", p.Nombre)
		}
		// The checkout request carries the authoritative quantity, not the
		// one stored in the cart.
		if p.Stock != nil && *p.Stock < linea.Cantidad {
			return nil, fmt.Errorf("Stock insuficiente para '%s'. Solicitado: %d, Disponible: %d.", p.Nombre, linea.Cantidad, *p.Stock)
		}

		r, err := s.resolverLinea(ctx, p, linea)
		if err != nil {
			return nil, err
		}
		total = total.Add(r.precioTotal)
		resolved = append(resolved, *r)
	}

	var pedido model.Pedido
	txErr := runTx(ctx, s.pedidoRepo.DB(), func(tx *gorm.DB) error {
		// Authoritative seat recheck: closes the race between the pre-flight
		// check above and commit. The transaction serializes this against
		// concurrent checkouts, so of two orders racing for one seat exactly
		// one gets here first and the other fails.
		for _, r := range resolved {
			if r.asiento == nil {
				continue
			}
			ocupado, err := s.pedidoRepo.AsientoOcupado(ctx, tx, r.asiento.ID, r.producto.ID)
			if err != nil {
				return err
			}
			if ocupado {
				return ErrAsientoNoDisponible
			}
		}

		pedido = model.Pedido{
			ClienteID:              clienteID,
			Total:                  total,
			Estado:                 model.EstadoPendientePago,
			DireccionFacturacionID: direccionID,
		}
		for _, r := range resolved {
			item := model.ItemPedido{
				ProductoID:     r.producto.ID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precioBase,
				PrecioTotal:    r.precioTotal,
				TipoAsientoID:  r.tipoAsientoID,
			}
			if r.asiento != nil {
				item.SeleccionAsiento = &model.SeleccionAsiento{
					AsientoFisicoID: r.asiento.ID,
					PrecioAdicional: r.asiento.PrecioAdicional,
				}
			}
			for _, eq := range r.equipaje {
				item.SeleccionesEquipaje = append(item.SeleccionesEquipaje, model.SeleccionEquipaje{
					OpcionEquipajeID: eq.opcion.ID,
					Cantidad:         eq.cantidad,
					PrecioAdicional:  eq.precio,
				})
			}
			pedido.Items = append(pedido.Items, item)
		}

		if err := s.pedidoRepo.Create(ctx, tx, &pedido); err != nil {
			return err
		}

		// Decrement stock, skipping unlimited (nil) stock. The conditional
		// UPDATE re-validates sufficiency under the tx; zero rows means a
		// concurrent checkout drained the stock first.
		for _, r := range resolved {
			if r.producto.Stock == nil {
				continue
			}
			rows, err := s.productoRepo.DescontarStockTx(tx, r.producto.ID, r.cantidad)
			if err != nil {
				return fmt.Errorf("error descontando stock de '%s': %w", r.producto.Nombre, err)
			}
			if rows == 0 {
				return fmt.Errorf("Stock insuficiente para '%s'. Solicitado: %d.", r.producto.Nombre, r.cantidad)
			}
		}

		return s.carritoRepo.VaciarTx(tx, carrito.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	completo, err := s.pedidoRepo.FindByID(ctx, pedido.ID)
	if err != nil {
		// The order committed; fall back to the in-memory copy.
		completo = &pedido
	}
	return pedidoToResponse(completo), nil
}

// resolverLinea validates one line's flight selections and computes its
// effective unit price. Non-flight products must not carry any selection.
func (s *checkoutService) resolverLinea(ctx context.Context, p *model.Producto, linea dto.ItemPedidoRequest) (*lineaResuelta, error) {
	esVuelo := p.Pasaje != nil
	tieneSelecciones := linea.ClaseServicioID != nil || linea.AsientoFisicoID != nil || len(linea.SeleccionesEquipaje) > 0
	if !esVuelo && tieneSelecciones {
		return nil, fmt.Errorf("El producto '%s' no es un vuelo y no admite selecciones de clase, asiento ni equipaje", p.Nombre)
	}

	r := &lineaResuelta{
		producto:   p,
		cantidad:   linea.Cantidad,
		precioBase: p.Precio,
	}
	precio := p.Precio

	if esVuelo {
		if linea.ClaseServicioID != nil {
			claseID, err := uuid.Parse(*linea.ClaseServicioID)
			if err != nil {
				return nil, fmt.Errorf("seleccion_clase_servicio_id inválido: %w", err)
			}
			clase, err := s.vueloRepo.FindTipoAsiento(ctx, claseID)
			if err != nil {
				return nil, fmt.Errorf("Clase de servicio no encontrada")
			}
			if clase.Multiplicador == nil {
				return nil, fmt.Errorf("La clase de servicio '%s' no tiene multiplicador de precio configurado", clase.Nombre)
			}
			precio = precio.Mul(*clase.Multiplicador)
			r.tipoAsientoID = &clase.ID
		}

		if linea.AsientoFisicoID != nil {
			asientoID, err := uuid.Parse(*linea.AsientoFisicoID)
			if err != nil {
				return nil, fmt.Errorf("seleccion_asiento_fisico_id inválido: %w", err)
			}
			asiento, err := s.vueloRepo.FindAsiento(ctx, asientoID)
			if err != nil {
				return nil, fmt.Errorf("Asiento físico no encontrado")
			}
			if asiento.ConfiguracionAvionID != p.Pasaje.ConfiguracionAvionID {
				return nil, fmt.Errorf("El asiento no pertenece a la configuración del avión de este vuelo")
			}
			// Preliminary availability check — fail fast before opening the
			// transaction. The authoritative recheck happens inside it.
			ocupado, err := s.pedidoRepo.AsientoOcupado(ctx, nil, asiento.ID, p.ID)
			if err != nil {
				return nil, err
			}
			if ocupado {
				return nil, ErrAsientoNoDisponible
			}
			precio = precio.Add(asiento.PrecioAdicional)
			r.asiento = asiento
		}

		for _, eq := range linea.SeleccionesEquipaje {
			if eq.Cantidad < 1 {
				return nil, fmt.Errorf("La cantidad de equipaje debe ser un entero positivo")
			}
			opcionID, err := uuid.Parse(eq.OpcionEquipajeID)
			if err != nil {
				return nil, fmt.Errorf("id_opcion_equipaje inválido: %w", err)
			}
			opcion, err := s.vueloRepo.FindOpcionEquipaje(ctx, opcionID)
			if err != nil || !opcion.Activo {
				return nil, fmt.Errorf("Opción de equipaje no disponible")
			}
			adicional := opcion.PrecioAdicional.Mul(decimal.NewFromInt(int64(eq.Cantidad)))
			precio = precio.Add(adicional)
			r.equipaje = append(r.equipaje, equipajeResuelto{
				opcion:   opcion,
				cantidad: eq.Cantidad,
				precio:   adicional,
			})
		}
	}

	r.precioEfectivo = precio
	r.precioTotal = precio.Mul(decimal.NewFromInt(int64(linea.Cantidad)))
	return r, nil
}

// pedidoToResponse maps a loaded Pedido to its API shape. Shared with
// PedidoService.
func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	items := make([]dto.ItemPedidoResponse, 0, len(p.Items))
	for _, item := range p.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		ir := dto.ItemPedidoResponse{
			ID:             item.ID.String(),
			ProductoID:     item.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			PrecioTotal:    item.PrecioTotal,
		}
		if item.TipoAsiento != nil {
			clase := item.TipoAsiento.Nombre
			ir.ClaseServicio = &clase
		}
		if item.SeleccionAsiento != nil {
			sa := dto.SeleccionAsientoResponse{
				AsientoFisicoID: item.SeleccionAsiento.AsientoFisicoID.String(),
				PrecioAdicional: item.SeleccionAsiento.PrecioAdicional,
			}
			if item.SeleccionAsiento.AsientoFisico != nil {
				sa.Fila = item.SeleccionAsiento.AsientoFisico.Fila
				sa.Columna = item.SeleccionAsiento.AsientoFisico.Columna
			}
			ir.SeleccionAsiento = &sa
		}
		for _, se := range item.SeleccionesEquipaje {
			nombreOpcion := ""
			if se.OpcionEquipaje != nil {
				nombreOpcion = se.OpcionEquipaje.Nombre
			}
			ir.SeleccionesEquipaje = append(ir.SeleccionesEquipaje, dto.SeleccionEquipajeResponse{
				OpcionEquipajeID: se.OpcionEquipajeID.String(),
				Nombre:           nombreOpcion,
				Cantidad:         se.Cantidad,
				PrecioAdicional:  se.PrecioAdicional,
			})
		}
		items = append(items, ir)
	}

	resp := &dto.PedidoResponse{
		ID:        p.ID.String(),
		ClienteID: p.ClienteID.String(),
		Estado:    string(p.Estado),
		Total:     p.Total,
		Items:     items,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.DireccionFacturacionID != nil {
		id := p.DireccionFacturacionID.String()
		resp.DireccionFacturacionID = &id
	}
	return resp
}
