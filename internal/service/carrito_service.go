package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CarritoService manages the customer's in-progress selection. The cart is
// created lazily on the first add.
type CarritoService interface {
	Obtener(ctx context.Context, clienteID uuid.UUID) (*dto.CarritoResponse, error)
	AgregarItem(ctx context.Context, clienteID uuid.UUID, req dto.AgregarItemCarritoRequest) (*dto.CarritoResponse, error)
	ActualizarItem(ctx context.Context, clienteID, itemID uuid.UUID, req dto.ActualizarItemCarritoRequest) (*dto.CarritoResponse, error)
	QuitarItem(ctx context.Context, clienteID, itemID uuid.UUID) error
}

type carritoService struct {
	repo         repository.CarritoRepository
	productoRepo repository.ProductoRepository
}

func NewCarritoService(repo repository.CarritoRepository, productoRepo repository.ProductoRepository) CarritoService {
	return &carritoService{repo: repo, productoRepo: productoRepo}
}

func (s *carritoService) Obtener(ctx context.Context, clienteID uuid.UUID) (*dto.CarritoResponse, error) {
	carrito, err := s.repo.FindByClienteID(ctx, clienteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No cart yet — present an empty one without creating the row.
		return &dto.CarritoResponse{Items: []dto.ItemCarritoResponse{}, Total: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) AgregarItem(ctx context.Context, clienteID uuid.UUID, req dto.AgregarItemCarritoRequest) (*dto.CarritoResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("id_producto inválido: %w", err)
	}
	producto, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("Producto no encontrado")
	}
	if !producto.Activo {
		return nil, fmt.Errorf("El producto '%s' está inactivo", producto.Nombre)
	}
	if producto.Stock != nil && *producto.Stock < req.Cantidad {
		return nil, fmt.Errorf("Stock insuficiente para '%s'. Solicitado: %d, Disponible: %d.", producto.Nombre, req.Cantidad, *producto.Stock)
	}

	carrito, err := s.repo.FindOrCreate(ctx, clienteID)
	if err != nil {
		return nil, err
	}

	// Adding a product already present accumulates quantity.
	if existente, err := s.repo.FindItemPorProducto(ctx, carrito.ID, pid); err == nil {
		nueva := existente.Cantidad + req.Cantidad
		if producto.Stock != nil && *producto.Stock < nueva {
			return nil, fmt.Errorf("Stock insuficiente para '%s'. Solicitado: %d, Disponible: %d.", producto.Nombre, nueva, *producto.Stock)
		}
		if err := s.repo.UpdateItemCantidad(ctx, existente.ID, nueva); err != nil {
			return nil, err
		}
	} else {
		item := &model.ItemCarrito{
			CarritoID:  carrito.ID,
			ProductoID: pid,
			Cantidad:   req.Cantidad,
		}
		if err := s.repo.AddItem(ctx, item); err != nil {
			return nil, err
		}
	}

	actualizado, err := s.repo.FindByClienteID(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	return carritoToResponse(actualizado), nil
}

func (s *carritoService) ActualizarItem(ctx context.Context, clienteID, itemID uuid.UUID, req dto.ActualizarItemCarritoRequest) (*dto.CarritoResponse, error) {
	carrito, err := s.repo.FindByClienteID(ctx, clienteID)
	if err != nil {
		return nil, ErrCarritoVacio
	}
	item, err := s.repo.FindItem(ctx, carrito.ID, itemID)
	if err != nil {
		return nil, fmt.Errorf("Item de carrito no encontrado")
	}
	producto, err := s.productoRepo.FindByID(ctx, item.ProductoID)
	if err == nil && producto.Stock != nil && *producto.Stock < req.Cantidad {
		return nil, fmt.Errorf("Stock insuficiente para '%s'. Solicitado: %d, Disponible: %d.", producto.Nombre, req.Cantidad, *producto.Stock)
	}
	if err := s.repo.UpdateItemCantidad(ctx, item.ID, req.Cantidad); err != nil {
		return nil, err
	}
	actualizado, err := s.repo.FindByClienteID(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	return carritoToResponse(actualizado), nil
}

func (s *carritoService) QuitarItem(ctx context.Context, clienteID, itemID uuid.UUID) error {
	carrito, err := s.repo.FindByClienteID(ctx, clienteID)
	if err != nil {
		return ErrCarritoVacio
	}
	if _, err := s.repo.FindItem(ctx, carrito.ID, itemID); err != nil {
		return fmt.Errorf("Item de carrito no encontrado")
	}
	return s.repo.RemoveItem(ctx, itemID)
}

func carritoToResponse(c *model.Carrito) *dto.CarritoResponse {
	items := make([]dto.ItemCarritoResponse, 0, len(c.Items))
	total := decimal.Zero
	for _, item := range c.Items {
		nombre, tipo := "", ""
		precio := decimal.Zero
		if item.Producto != nil {
			nombre = item.Producto.Nombre
			precio = item.Producto.Precio
			if item.Producto.TipoProducto != nil {
				tipo = item.Producto.TipoProducto.Nombre
			}
		}
		subtotal := precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		total = total.Add(subtotal)
		items = append(items, dto.ItemCarritoResponse{
			ID:         item.ID.String(),
			ProductoID: item.ProductoID.String(),
			Producto:   nombre,
			Tipo:       tipo,
			Precio:     precio,
			Cantidad:   item.Cantidad,
			Subtotal:   subtotal,
		})
	}
	return &dto.CarritoResponse{
		ID:    c.ID.String(),
		Items: items,
		Total: total,
	}
}
