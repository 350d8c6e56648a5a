package persona

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"persona/internal/persona/models"
	id "persona/pkg/domain"
	"persona/pkg/platform/sentinel"
	"persona/pkg/requestcontext"
)

const uniqueViolation = "23505"

// Postgres persists personas in the personas table. The address object is
// stored as JSONB; the email column carries a unique index as a backstop
// behind the used-email ledger.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const personaColumns = `
	id, owner_id, email, alias, first_name, last_name,
	age, birthday, gender, phone, address, created_at, updated_at
`

func (s *Postgres) Insert(ctx context.Context, p *models.Persona) error {
	address, err := json.Marshal(p.Address)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}

	var assigned uuid.UUID
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO personas (
			owner_id, email, alias, first_name, last_name,
			age, birthday, gender, phone, address, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`,
		uuid.UUID(p.OwnerID), p.Email, p.Alias, p.FirstName, p.LastName,
		p.Age, p.Birthday, p.Gender, p.Phone, address, p.CreatedAt, p.UpdatedAt,
	).Scan(&assigned)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert persona: %w", err)
	}
	p.ID = id.PersonaID(assigned)
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, personaID id.PersonaID) (*models.Persona, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+personaColumns+` FROM personas WHERE id = $1`, uuid.UUID(personaID))
	return scanPersona(row)
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.Persona, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+personaColumns+` FROM personas WHERE email = $1`, email)
	return scanPersona(row)
}

func (s *Postgres) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Persona, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+personaColumns+` FROM personas WHERE owner_id = $1 ORDER BY created_at, id`,
		uuid.UUID(owner))
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()

	var out []*models.Persona
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate personas: %w", err)
	}
	return out, nil
}

// UpdateProfile builds a SET clause from the present fields only, so absent
// fields are untouched (field-level last write wins). The WHERE clause
// scopes to both id and owner; zero matched rows reports ErrNotFound
// without distinguishing absent from not-owned.
func (s *Postgres) UpdateProfile(ctx context.Context, personaID id.PersonaID, owner id.UserID, update *models.Profile) error {
	set := make([]string, 0, 9)
	args := make([]any, 0, 11)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Alias != nil {
		add("alias", *update.Alias)
	}
	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name", *update.LastName)
	}
	if update.Age != nil {
		add("age", *update.Age)
	}
	if update.Birthday != nil {
		add("birthday", *update.Birthday)
	}
	if update.Gender != nil {
		add("gender", *update.Gender)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.Address != nil {
		address, err := json.Marshal(update.Address)
		if err != nil {
			return fmt.Errorf("encode address: %w", err)
		}
		add("address", address)
	}
	add("updated_at", requestcontext.Now(ctx))

	args = append(args, uuid.UUID(personaID), uuid.UUID(owner))
	query := fmt.Sprintf(
		"UPDATE personas SET %s WHERE id = $%d AND owner_id = $%d",
		strings.Join(set, ", "), len(args)-1, len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update persona: %w", err)
	}
	matched, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update persona: %w", err)
	}
	if matched == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, personaID id.PersonaID, owner id.UserID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM personas WHERE id = $1 AND owner_id = $2`,
		uuid.UUID(personaID), uuid.UUID(owner))
	if err != nil {
		return fmt.Errorf("delete persona: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete persona: %w", err)
	}
	if deleted == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPersona(row rowScanner) (*models.Persona, error) {
	var (
		p         models.Persona
		personaID uuid.UUID
		owner     uuid.UUID
		address   []byte
	)
	err := row.Scan(
		&personaID, &owner, &p.Email, &p.Alias, &p.FirstName, &p.LastName,
		&p.Age, &p.Birthday, &p.Gender, &p.Phone, &address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan persona: %w", err)
	}
	if err := json.Unmarshal(address, &p.Address); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	p.ID = id.PersonaID(personaID)
	p.OwnerID = id.UserID(owner)
	return &p, nil
}
