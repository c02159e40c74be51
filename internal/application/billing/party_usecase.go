package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
	"github.com/jhoicas/gstbooks-api/pkg/gstin"
)

// PartyUseCase casos de uso para terceros (clientes y proveedores).
type PartyUseCase struct {
	repo  repository.PartyRepository
	state *appstate.State
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(repo repository.PartyRepository, state *appstate.State) *PartyUseCase {
	return &PartyUseCase{repo: repo, state: state}
}

// Create crea un tercero. El GSTIN, si viene, debe ser válido y único; el código de
// estado se deriva de él cuando se omite y debe coincidir cuando se envían ambos.
func (uc *PartyUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidPartyType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	g := gstin.Normalize(in.GSTIN)
	state := strings.TrimSpace(in.StateCode)
	if g != "" {
		if err := gstin.Validate(g); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if state == "" {
			state = gstin.StateCode(g)
		} else if state != gstin.StateCode(g) {
			return nil, fmt.Errorf("%w: state_code %s no coincide con el GSTIN", domain.ErrInvalidInput, state)
		}
		existing, err := uc.repo.GetByGSTIN(ctx, g)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if state != "" && !gstin.ValidStateCode(state) {
		return nil, fmt.Errorf("%w: código de estado desconocido %s", domain.ErrInvalidInput, state)
	}

	now := time.Now()
	p := &entity.Party{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      in.Type,
		GSTIN:     g,
		StateCode: state,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPartyResponse(p), nil
}

// Get obtiene un tercero por ID.
func (uc *PartyUseCase) Get(ctx context.Context, id string) (*dto.PartyResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPartyResponse(p), nil
}

// List lista terceros; partyType vacío devuelve todos.
func (uc *PartyUseCase) List(ctx context.Context, partyType string, limit, offset int) ([]*dto.PartyResponse, error) {
	if partyType != "" && !entity.ValidPartyType(partyType) {
		return nil, domain.ErrInvalidInput
	}
	limit, offset = uc.state.Page(limit, offset)
	list, err := uc.repo.List(ctx, repository.PartyFilter{Type: partyType, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPartyResponse(p))
	}
	return out, nil
}

func toPartyResponse(p *entity.Party) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		GSTIN:     p.GSTIN,
		StateCode: p.StateCode,
		StateName: gstin.StateName(p.StateCode),
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
	}
}
