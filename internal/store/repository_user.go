package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new user and returns it with the server-assigned fields
// (ID, Active, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [*DuplicateValueError].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	stmt, args, err := psql.Insert("users").
		Columns("name", "email", "photo", "role", "password").
		Values(user.Name, user.Email, user.Photo, string(user.Role), user.Password).
		Suffix("RETURNING " + selectUserColumns).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "userRepository.Create", stmt, args)
}

// FindByEmail retrieves the active user with the given email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	stmt, args, err := psql.Select(selectUserColumns).
		From("users").
		Where(sq.Eq{"email": email, "active": true}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "userRepository.FindByEmail", stmt, args)
}

// FindByID retrieves the active user with the given id.
func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	stmt, args, err := psql.Select(selectUserColumns).
		From("users").
		Where(sq.Eq{"id": id, "active": true}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "userRepository.FindByID", stmt, args)
}

// GetAll lists active users matching query.
func (r *userRepository) GetAll(ctx context.Context, query models.ListQuery) ([]models.User, error) {
	log := logger.FromContext(ctx)

	builder, err := applyListQuery(
		psql.Select(selectUserColumns).From("users").Where(sq.Eq{"active": true}),
		query,
		userColumns,
	)
	if err != nil {
		return nil, err
	}

	stmt, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.GetAll").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, classifyPgError(err))
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "userRepository.GetAll").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// Update applies the non-nil fields of update to an active user.
func (r *userRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	set := make(map[string]any, 4)
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Photo != nil {
		set["photo"] = *update.Photo
	}
	if update.Role != nil {
		set["role"] = string(*update.Role)
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	stmt, args, err := psql.Update("users").
		SetMap(set).
		Where(sq.Eq{"id": id, "active": true}).
		Suffix("RETURNING " + selectUserColumns).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "userRepository.Update", stmt, args)
}

// UpdatePassword stores a new password hash and the time it was changed.
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string, changedAt time.Time) error {
	return r.exec(ctx, "userRepository.UpdatePassword", psql.Update("users").
		Set("password", passwordHash).
		Set("password_changed_at", changedAt).
		Where(sq.Eq{"id": id, "active": true}))
}

// Deactivate hides a user from every lookup without deleting the row.
func (r *userRepository) Deactivate(ctx context.Context, id int64) error {
	return r.exec(ctx, "userRepository.Deactivate", psql.Update("users").
		Set("active", false).
		Where(sq.Eq{"id": id, "active": true}))
}

// Delete removes an active user and their reviews.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, "userRepository.Delete", psql.Delete("users").
		Where(sq.Eq{"id": id, "active": true}))
}

func (r *userRepository) exec(ctx context.Context, fn string, b sq.Sqlizer) error {
	log := logger.FromContext(ctx)

	stmt, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute statement")
		return fmt.Errorf("unexpected DB error: %w", classifyPgError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) queryOne(ctx context.Context, fn, stmt string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("user query failed")

		classified := classifyPgError(err)
		if classified != err {
			return models.User{}, classified
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u         models.User
		role      string
		changedAt sql.NullTime
	)

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Photo, &role, &u.Password, &changedAt, &u.Active, &u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	u.Role = models.Role(role)
	if changedAt.Valid {
		u.PasswordChangedAt = &changedAt.Time
	}

	return u, nil
}
