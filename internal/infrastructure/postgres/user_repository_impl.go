package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"identity-api/internal/domain/entity"
	"identity-api/internal/domain/repository"
)

// UserRepository is the postgres credential store. Telephones live in a JSONB
// column; email uniqueness is enforced by a unique index so concurrent writes
// surface as ErrDuplicateEmail.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tels, err := json.Marshal(u.Telephones)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, telephones)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, tels)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translate(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	var tels []byte

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, telephones, created_at, updated_at
		FROM users
		WHERE `+column+` = $1
	`, value)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &tels,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(tels, &u.Telephones); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, fields repository.UpdateFields) (*entity.User, error) {
	var tels []byte
	if fields.Telephones != nil {
		b, err := json.Marshal(fields.Telephones)
		if err != nil {
			return nil, err
		}
		tels = b
	}

	u := &entity.User{}
	var outTels []byte
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			name          = COALESCE($1, name),
			email         = COALESCE($2, email),
			password_hash = COALESCE($3, password_hash),
			telephones    = COALESCE($4, telephones),
			updated_at    = now()
		WHERE id = $5
		RETURNING id, name, email, password_hash, telephones, created_at, updated_at
	`, fields.Name, fields.Email, fields.PasswordHash, tels, id)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &outTels,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(outTels, &u.Telephones); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*entity.DeletedUser, error) {
	d := &entity.DeletedUser{}
	row := r.pool.QueryRow(ctx, `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, name
	`, id)

	if err := row.Scan(&d.ID, &d.Name); err != nil {
		return nil, translate(err)
	}
	return d, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password_hash, telephones, created_at, updated_at
		FROM users
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.User
	for rows.Next() {
		var u entity.User
		var tels []byte
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &tels,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tels, &u.Telephones); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
