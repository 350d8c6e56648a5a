package usedemail

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"persona/internal/persona/models"
	id "persona/pkg/domain"
	"persona/pkg/platform/sentinel"
	"persona/pkg/requestcontext"
)

// Postgres persists the ledger in the used_emails table. The email column
// is the primary key, so the insert-if-absent below is atomic at the store:
// concurrent reservations by different owners resolve to one row.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Reserve(ctx context.Context, email string, owner id.UserID) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO used_emails (email, owner_id, reserved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
	`, email, uuid.UUID(owner), requestcontext.Now(ctx))
	if err != nil {
		return fmt.Errorf("insert used email: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert used email: %w", err)
	}
	if rows == 1 {
		return nil
	}

	// Lost the insert: the row exists. Entries are never deleted, so the
	// follow-up read cannot miss.
	var holder uuid.UUID
	err = s.db.QueryRowContext(ctx,
		`SELECT owner_id FROM used_emails WHERE email = $1`, email,
	).Scan(&holder)
	if err != nil {
		return fmt.Errorf("load used email holder: %w", err)
	}
	if id.UserID(holder) == owner {
		return nil
	}
	return sentinel.ErrAlreadyUsed
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.UsedEmail, error) {
	entry := models.UsedEmail{Email: email}
	var owner uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		SELECT owner_id, reserved_at FROM used_emails WHERE email = $1
	`, email).Scan(&owner, &entry.ReservedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find used email: %w", err)
	}
	entry.OwnerID = id.UserID(owner)
	return &entry, nil
}
