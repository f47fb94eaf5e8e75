package service

import (
	"context"
	"errors"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DireccionService maintains customer billing addresses and the invariant
// that at most one of them is flagged principal.
type DireccionService interface {
	Listar(ctx context.Context, clienteID uuid.UUID) ([]dto.DireccionResponse, error)
	Crear(ctx context.Context, clienteID uuid.UUID, req dto.DireccionRequest) (*dto.DireccionResponse, error)
	Actualizar(ctx context.Context, clienteID, id uuid.UUID, req dto.DireccionRequest) (*dto.DireccionResponse, error)
	Eliminar(ctx context.Context, clienteID, id uuid.UUID) error
}

type direccionService struct {
	repo repository.DireccionRepository
}

func NewDireccionService(repo repository.DireccionRepository) DireccionService {
	return &direccionService{repo: repo}
}

func (s *direccionService) Listar(ctx context.Context, clienteID uuid.UUID) ([]dto.DireccionResponse, error) {
	direcciones, err := s.repo.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DireccionResponse, 0, len(direcciones))
	for i := range direcciones {
		resp = append(resp, *direccionToResponse(&direcciones[i]))
	}
	return resp, nil
}

func (s *direccionService) Crear(ctx context.Context, clienteID uuid.UUID, req dto.DireccionRequest) (*dto.DireccionResponse, error) {
	d := &model.DireccionFacturacion{
		ClienteID:    clienteID,
		Calle:        req.Calle,
		Numero:       req.Numero,
		Ciudad:       req.Ciudad,
		Provincia:    req.Provincia,
		CodigoPostal: req.CodigoPostal,
		Pais:         req.Pais,
		Principal:    req.Principal,
	}
	// The principal flag swap and the insert share one transaction so the
	// "at most one principal" invariant holds at every commit point.
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, d); err != nil {
			return err
		}
		if d.Principal {
			return s.repo.DesmarcarPrincipalTx(tx, clienteID, d.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return direccionToResponse(d), nil
}

func (s *direccionService) Actualizar(ctx context.Context, clienteID, id uuid.UUID, req dto.DireccionRequest) (*dto.DireccionResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil || d.ClienteID != clienteID {
		return nil, errors.New("Dirección no encontrada")
	}
	d.Calle = req.Calle
	d.Numero = req.Numero
	d.Ciudad = req.Ciudad
	d.Provincia = req.Provincia
	d.CodigoPostal = req.CodigoPostal
	d.Pais = req.Pais
	d.Principal = req.Principal

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, d); err != nil {
			return err
		}
		if d.Principal {
			return s.repo.DesmarcarPrincipalTx(tx, clienteID, d.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return direccionToResponse(d), nil
}

func (s *direccionService) Eliminar(ctx context.Context, clienteID, id uuid.UUID) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil || d.ClienteID != clienteID {
		return errors.New("Dirección no encontrada")
	}
	return s.repo.Delete(ctx, id)
}

func direccionToResponse(d *model.DireccionFacturacion) *dto.DireccionResponse {
	return &dto.DireccionResponse{
		ID:           d.ID.String(),
		Calle:        d.Calle,
		Numero:       d.Numero,
		Ciudad:       d.Ciudad,
		Provincia:    d.Provincia,
		CodigoPostal: d.CodigoPostal,
		Pais:         d.Pais,
		Principal:    d.Principal,
	}
}
