package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
	"github.com/shandysiswandi/govault/internal/vault/entity"
)

const accountColumns = `id, key, name, secret, encrypted, digits, period, algorithm, type, counter, created_at, updated_at`

func (s *DB) CreateAccount(ctx context.Context, in entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO vault_accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		in.ID, in.Key, in.Name, in.Secret, in.Encrypted, in.Digits, in.Period,
		string(in.Algorithm), string(in.Type), in.Counter, in.CreatedAt, in.UpdatedAt,
	)
	return s.mapError(err)
}

func (s *DB) GetAccountByKey(ctx context.Context, key string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByKey")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM vault_accounts
		WHERE key = $1`, key)

	acc, err := scanAccount(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return acc, nil
}

func (s *DB) GetAccountList(ctx context.Context) (_ []entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT `+accountColumns+`
		FROM vault_accounts
		ORDER BY key`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var out []entity.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		out = append(out, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}
	return out, nil
}

func (s *DB) GetAccountKeys(ctx context.Context) (_ []string, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountKeys")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT key FROM vault_accounts ORDER BY key`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, s.mapError(err)
	}
	return keys, nil
}

func (s *DB) UpdateAccount(ctx context.Context, in entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccount")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE vault_accounts
		SET name = $2, secret = $3, encrypted = $4, digits = $5, period = $6,
			algorithm = $7, updated_at = $8
		WHERE key = $1`,
		in.Key, in.Name, in.Secret, in.Encrypted, in.Digits, in.Period,
		string(in.Algorithm), in.UpdatedAt,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}
	return nil
}

func (s *DB) DeleteAccount(ctx context.Context, key string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteAccount")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM vault_accounts WHERE key = $1`, key)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}
	return nil
}

// IncrementAccountCounter advances the counter in a single statement so
// concurrent issuances never observe the same value.
func (s *DB) IncrementAccountCounter(ctx context.Context, key string) (_ uint64, err error) {
	ctx, span := s.startSpan(ctx, "IncrementAccountCounter")
	defer func() { s.endSpan(span, err) }()

	var counter uint64
	err = s.conn.QueryRow(ctx, `
		UPDATE vault_accounts
		SET counter = counter + 1, updated_at = now()
		WHERE key = $1
		RETURNING counter`, key).Scan(&counter)
	if err != nil {
		return 0, s.mapError(err)
	}
	return counter, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var acc entity.Account
	var algorithm, typ string

	err := row.Scan(
		&acc.ID, &acc.Key, &acc.Name, &acc.Secret, &acc.Encrypted,
		&acc.Digits, &acc.Period, &algorithm, &typ, &acc.Counter,
		&acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	acc.Algorithm = otp.Algorithm(algorithm)
	acc.Type = otp.Type(typ)
	return &acc, nil
}
