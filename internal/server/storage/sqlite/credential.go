package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/credadmin/internal/models"
	"github.com/iudanet/credadmin/internal/server/storage"
)

const (
	selectCredential = `
		SELECT c.id, c.login, c.password_hash, c.last_login_date, c.activation_key,
		       c.reset_key, c.reset_date, c.activated, c.is_primary, c.user_id,
		       COALESCE(u.login, '')
		FROM credentials c
		LEFT JOIN users u ON u.id = c.user_id
	`
	countCredentials = `
		SELECT COUNT(*)
		FROM credentials c
		LEFT JOIN users u ON u.id = c.user_id
	`
	searchCondition = ` WHERE (c.login LIKE ? ESCAPE '\' OR u.login LIKE ? ESCAPE '\')`
)

// sortColumns допустимые свойства сортировки (имена полей JSON)
var sortColumns = map[string]string{
	"id":            "c.id",
	"login":         "c.login",
	"passwordHash":  "c.password_hash",
	"lastLoginDate": "c.last_login_date",
	"activationKey": "c.activation_key",
	"resetKey":      "c.reset_key",
	"resetDate":     "c.reset_date",
	"activated":     "c.activated",
	"primary":       "c.is_primary",
	"userId":        "c.user_id",
	"userLogin":     "u.login",
}

// CreateCredential inserts a credential and assigns its ID
func (s *Storage) CreateCredential(ctx context.Context, cred *models.Credential) error {
	query := `
		INSERT INTO credentials (login, password_hash, last_login_date, activation_key,
		                         reset_key, reset_date, activated, is_primary, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query, credentialArgs(cred)...)
	if err != nil {
		if isConstraintError(err, "FOREIGN KEY constraint failed") {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert credential: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get credential id: %w", err)
	}
	cred.ID = &id

	return nil
}

// UpdateCredential replaces all fields of an existing credential
func (s *Storage) UpdateCredential(ctx context.Context, cred *models.Credential) error {
	if !cred.HasID() {
		return storage.ErrCredentialNotFound
	}

	query := `
		UPDATE credentials
		SET login = ?, password_hash = ?, last_login_date = ?, activation_key = ?,
		    reset_key = ?, reset_date = ?, activated = ?, is_primary = ?, user_id = ?
		WHERE id = ?
	`

	args := append(credentialArgs(cred), cred.IDValue())
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraintError(err, "FOREIGN KEY constraint failed") {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to update credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCredentialNotFound
	}

	return nil
}

// GetCredential retrieves credential by ID
func (s *Storage) GetCredential(ctx context.Context, id int64) (*models.Credential, error) {
	cred, err := scanCredential(s.db.QueryRowContext(ctx, selectCredential+" WHERE c.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return cred, nil
}

// ListCredentials returns a page of credentials and the total count
func (s *Storage) ListCredentials(ctx context.Context, q storage.Query) ([]*models.Credential, int, error) {
	orderBy, err := orderClause(q.Sort)
	if err != nil {
		return nil, 0, err
	}

	var (
		where string
		args  []any
	)
	if q.Text != "" {
		pattern := "%" + escapeLike(q.Text) + "%"
		where = searchCondition
		args = append(args, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countCredentials+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count credentials: %w", err)
	}

	query := selectCredential + where + orderBy
	if q.Size > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Size, q.Page*q.Size)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	creds := make([]*models.Credential, 0)
	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate credentials: %w", err)
	}

	return creds, total, nil
}

// DeleteCredential deletes credential by ID
func (s *Storage) DeleteCredential(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCredentialNotFound
	}

	return nil
}

func credentialArgs(cred *models.Credential) []any {
	var userID any
	if cred.UserID != nil {
		userID = *cred.UserID
	}
	return []any{
		cred.Login,
		cred.PasswordHash,
		nullTime(cred.LastLoginDate),
		cred.ActivationKey,
		cred.ResetKey,
		nullTime(cred.ResetDate),
		cred.Activated,
		cred.Primary,
		userID,
	}
}

func scanCredential(row rowScanner) (*models.Credential, error) {
	var (
		id        int64
		lastLogin sql.NullTime
		resetDate sql.NullTime
		userID    sql.NullInt64
	)
	cred := &models.Credential{}

	err := row.Scan(
		&id,
		&cred.Login,
		&cred.PasswordHash,
		&lastLogin,
		&cred.ActivationKey,
		&cred.ResetKey,
		&resetDate,
		&cred.Activated,
		&cred.Primary,
		&userID,
		&cred.UserLogin,
	)
	if err != nil {
		return nil, err
	}

	cred.ID = &id
	cred.LastLoginDate = timePtr(lastLogin)
	cred.ResetDate = timePtr(resetDate)
	if userID.Valid {
		cred.UserID = &userID.Int64
	}

	return cred, nil
}

// orderClause строит ORDER BY из белого списка; id добавляется для стабильного порядка страниц
func orderClause(sort []storage.SortOrder) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	byID := false
	for _, o := range sort {
		column, ok := sortColumns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: %s", storage.ErrInvalidSort, o.Property)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, column+" "+dir)
		byID = byID || o.Property == "id"
	}
	if !byID {
		parts = append(parts, "c.id ASC")
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
