package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lockboxhq/vault-api/internal/data/pgxutil"
	"github.com/lockboxhq/vault-api/internal/domain/model"
)

const credentialColumns = "id, account_id, name, site_url, username, password, notes, created_at, updated_at"

// CredentialRepo provides database operations for vault entries. Every query
// is scoped by account id so one account can never read another's entries.
type CredentialRepo struct {
	DB  *sql.DB
	now func() time.Time
}

// NewCredentialRepo creates a new CredentialRepo.
func NewCredentialRepo(db *sql.DB) *CredentialRepo {
	return &CredentialRepo{DB: db, now: time.Now}
}

// Create inserts a new vault entry for the given account.
func (r *CredentialRepo) Create(
	ctx context.Context,
	accountID string,
	req *model.CreateCredentialRequest,
) (*model.Credential, error) {
	if req == nil {
		return nil, errors.New("create credential request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.now().UTC()
	var out model.Credential
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO credentials (
				id, account_id, name, site_url, username, password, notes, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $8
			) RETURNING `+credentialColumns,
			uuid.NewString(),
			accountID,
			strings.TrimSpace(req.Name),
			req.SiteURL,
			req.Username,
			req.Password,
			req.Notes,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Credential])
		return err
	}); err != nil {
		return nil, mapCredentialWriteErr(err)
	}
	return &out, nil
}

// GetByID retrieves a single vault entry owned by the account.
func (r *CredentialRepo) GetByID(ctx context.Context, accountID, id string) (*model.Credential, error) {
	var out model.Credential
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+credentialColumns+` FROM credentials WHERE account_id = $1 AND id = $2`,
			accountID, id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Credential])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &out, nil
}

// ListByAccount retrieves all vault entries for an account, oldest first.
func (r *CredentialRepo) ListByAccount(ctx context.Context, accountID string) ([]*model.Credential, error) {
	var rowsOut []model.Credential
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+credentialColumns+` FROM credentials WHERE account_id = $1 ORDER BY created_at, id`,
			accountID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Credential])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	res := make([]*model.Credential, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update applies the non-nil fields of req to an entry owned by the account.
func (r *CredentialRepo) Update(
	ctx context.Context,
	accountID string,
	id string,
	req model.UpdateCredentialRequest,
) (*model.Credential, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	set := []string{"updated_at = $3"}
	args := []any{accountID, id, r.now().UTC()}
	appendSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if req.Name != nil {
		appendSet("name", strings.TrimSpace(*req.Name))
	}
	if req.SiteURL != nil {
		appendSet("site_url", *req.SiteURL)
	}
	if req.Username != nil {
		appendSet("username", *req.Username)
	}
	if req.Password != nil {
		appendSet("password", *req.Password)
	}
	if req.Notes != nil {
		appendSet("notes", *req.Notes)
	}

	query := `UPDATE credentials SET ` + strings.Join(set, ", ") +
		` WHERE account_id = $1 AND id = $2 RETURNING ` + credentialColumns

	var out model.Credential
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Credential])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, mapCredentialWriteErr(err)
	}
	return &out, nil
}

// Delete removes an entry owned by the account.
func (r *CredentialRepo) Delete(ctx context.Context, accountID, id string) error {
	var deleted int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx,
			`DELETE FROM credentials WHERE account_id = $1 AND id = $2`,
			accountID, id,
		)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected()
		return nil
	}); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if deleted == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// mapCredentialWriteErr maps constraint violations to repository sentinels.
func mapCredentialWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrCredentialNameExists
	}
	return fmt.Errorf("failed to write credential: %w", err)
}
