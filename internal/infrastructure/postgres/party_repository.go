package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

const partyColumns = `id, name, party_type, gstin, state_code, email, phone, address, created_at, updated_at`

// PartyRepo implementación de PartyRepository (usable con pool o tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

// Create persiste un nuevo tercero. Un GSTIN repetido devuelve ErrDuplicate.
func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Type, nullIfEmpty(p.GSTIN), nullIfEmpty(p.StateCode),
		nullIfEmpty(p.Email), nullIfEmpty(p.Phone), nullIfEmpty(p.Address),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero por ID; nil si no existe.
func (r *PartyRepo) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	p, err := scanParty(r.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return p, nil
}

// GetByGSTIN obtiene un tercero por GSTIN; nil si no existe.
func (r *PartyRepo) GetByGSTIN(ctx context.Context, gstin string) (*entity.Party, error) {
	p, err := scanParty(r.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties WHERE gstin = $1`, gstin))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party by gstin: %w", err)
	}
	return p, nil
}

// List lista terceros ordenados por nombre. Type "customer" incluye los de tipo "both".
func (r *PartyRepo) List(ctx context.Context, f repository.PartyFilter) ([]*entity.Party, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE ($1 = '' OR party_type = $1 OR ($1 <> 'both' AND party_type = 'both'))
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.Type, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanParty(row pgx.Row) (*entity.Party, error) {
	var p entity.Party
	var gstin, state, email, phone, address *string
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &gstin, &state, &email, &phone, &address, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.GSTIN = derefStr(gstin)
	p.StateCode = derefStr(state)
	p.Email = derefStr(email)
	p.Phone = derefStr(phone)
	p.Address = derefStr(address)
	return &p, nil
}
