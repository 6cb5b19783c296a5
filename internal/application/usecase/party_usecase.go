package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/application/inventory"
	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
	"github.com/casaguflo/inventario-api/pkg/identificacion"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente activo. La identificación, si viene, debe ser una cédula o RUC válidos.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	legalID, err := normalizeLegalID(in.LegalID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	client := &entity.Client{
		ID:        uuid.New().String(),
		LegalID:   legalID,
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Update actualiza un cliente; los campos nil no se modifican.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.LegalID != nil {
		if client.LegalID, err = normalizeLegalID(in.LegalID); err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		client.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		client.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		client.Email = strings.TrimSpace(*in.Email)
	}
	if in.Active != nil {
		client.Active = *in.Active
	}
	if client.Name == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	client.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes activos o inactivos.
func (uc *ClientUseCase) List(ctx context.Context, active bool) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(ctx, active)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return items, nil
}

// Deactivate borrado lógico de un cliente.
func (uc *ClientUseCase) Deactivate(ctx context.Context, id string) error {
	return setActive(ctx, uc.repo.SetActive, id, false)
}

// Reactivate vuelve a activar un cliente.
func (uc *ClientUseCase) Reactivate(ctx context.Context, id string) error {
	return setActive(ctx, uc.repo.SetActive, id, true)
}

// ProviderUseCase casos de uso CRUD para proveedores.
type ProviderUseCase struct {
	repo     repository.ProviderRepository
	txRunner inventory.TxRunner
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository, txRunner inventory.TxRunner) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un proveedor activo.
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	legalID, err := normalizeLegalID(in.LegalID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	provider := &entity.Provider{
		ID:          uuid.New().String(),
		LegalID:     legalID,
		Name:        name,
		ContactName: strings.TrimSpace(in.ContactName),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProviderUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	provider, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	return toProviderResponse(provider), nil
}

// Update actualiza un proveedor; los campos nil no se modifican.
func (uc *ProviderUseCase) Update(ctx context.Context, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	provider, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	if in.LegalID != nil {
		if provider.LegalID, err = normalizeLegalID(in.LegalID); err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		provider.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactName != nil {
		provider.ContactName = strings.TrimSpace(*in.ContactName)
	}
	if in.Phone != nil {
		provider.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		provider.Email = strings.TrimSpace(*in.Email)
	}
	if in.Active != nil {
		provider.Active = *in.Active
	}
	if provider.Name == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	provider.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// List lista proveedores activos o inactivos.
func (uc *ProviderUseCase) List(ctx context.Context, active bool) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(ctx, active)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProviderResponse(p))
	}
	return items, nil
}

// Deactivate borrado lógico de un proveedor.
func (uc *ProviderUseCase) Deactivate(ctx context.Context, id string) error {
	return setActive(ctx, uc.repo.SetActive, id, false)
}

// Reactivate vuelve a activar un proveedor.
func (uc *ProviderUseCase) Reactivate(ctx context.Context, id string) error {
	return setActive(ctx, uc.repo.SetActive, id, true)
}

// HardDelete elimina el proveedor. Sus ingresos se conservan sin proveedor asociado.
func (uc *ProviderUseCase) HardDelete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		found, err := repos.Providers.HardDelete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		return nil
	})
}

// normalizeLegalID recorta la identificación; vacía equivale a ausente.
func normalizeLegalID(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	id := strings.TrimSpace(*raw)
	if id == "" {
		return nil, nil
	}
	if err := identificacion.Validate(id); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLegalID, err)
	}
	return &id, nil
}

func toClientResponse(c *entity.Client) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:      c.ID,
		LegalID: c.LegalID,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Active:  c.Active,
	}
}

func toProviderResponse(p *entity.Provider) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:          p.ID,
		LegalID:     p.LegalID,
		Name:        p.Name,
		ContactName: p.ContactName,
		Phone:       p.Phone,
		Email:       p.Email,
		Active:      p.Active,
	}
}
