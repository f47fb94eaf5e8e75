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
)

// ProductoService is the admin-side catalog management contract.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	AgregarComponente(ctx context.Context, paqueteID uuid.UUID, req dto.ComponentePaqueteRequest) error
	QuitarComponente(ctx context.Context, paqueteID, productoID uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.LessThan(decimal.Zero) {
		return nil, errors.New("El precio no puede ser negativo")
	}
	tipoID, err := uuid.Parse(req.TipoProductoID)
	if err != nil {
		return nil, fmt.Errorf("id_tipo_producto inválido: %w", err)
	}
	p := &model.Producto{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		Precio:         req.Precio,
		Stock:          req.Stock,
		Activo:         true,
		TipoProductoID: tipoID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, p.ID)
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Producto no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		if req.Precio.LessThan(decimal.Zero) {
			return nil, errors.New("El precio no puede ser negativo")
		}
		p.Precio = *req.Precio
	}
	if req.Stock != nil {
		p.Stock = req.Stock
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) AgregarComponente(ctx context.Context, paqueteID uuid.UUID, req dto.ComponentePaqueteRequest) error {
	paquete, err := s.repo.FindByID(ctx, paqueteID)
	if err != nil {
		return errors.New("Paquete no encontrado")
	}
	if paquete.TipoProducto == nil || paquete.TipoProducto.Nombre != "paquete" {
		return errors.New("El producto no es un paquete")
	}
	componenteID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return fmt.Errorf("id_producto inválido: %w", err)
	}
	if componenteID == paqueteID {
		return errors.New("Un paquete no puede contenerse a sí mismo")
	}
	if _, err := s.repo.FindByID(ctx, componenteID); err != nil {
		return errors.New("Producto componente no encontrado")
	}
	return s.repo.AgregarComponente(ctx, &model.PaqueteDetalle{
		PaqueteID:  paqueteID,
		ProductoID: componenteID,
		Cantidad:   req.Cantidad,
	})
}

func (s *productoService) QuitarComponente(ctx context.Context, paqueteID, productoID uuid.UUID) error {
	return s.repo.QuitarComponente(ctx, paqueteID, productoID)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	tipo := ""
	if p.TipoProducto != nil {
		tipo = p.TipoProducto.Nombre
	}
	resp := &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Activo:      p.Activo,
		Tipo:        tipo,
	}
	for _, c := range p.Componentes {
		nombre := ""
		if c.Producto != nil {
			nombre = c.Producto.Nombre
		}
		resp.Componentes = append(resp.Componentes, dto.ComponenteResponse{
			ProductoID: c.ProductoID.String(),
			Producto:   nombre,
			Cantidad:   c.Cantidad,
		})
	}
	return resp
}
