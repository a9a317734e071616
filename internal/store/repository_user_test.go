package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userRowColumns = []string{"id", "name", "email", "photo", "role", "password", "password_changed_at", "active", "created_at"}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Name:     "Ann Smith",
		Email:    "ann@example.com",
		Photo:    models.DefaultPhoto,
		Role:     models.RoleUser,
		Password: "hash",
	}

	now := time.Now()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(1, user.Name, user.Email, user.Photo, "user", user.Password, nil, true, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.Photo, "user", user.Password).
		WillReturnRows(rows)

	created, err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if !created.Active {
		t.Error("expected created user to be active")
	}
	if created.PasswordChangedAt != nil {
		t.Errorf("expected nil PasswordChangedAt, got %v", created.PasswordChangedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{
			Code:   pgerrcode.UniqueViolation,
			Detail: "Key (email)=(ann@example.com) already exists.",
		})

	_, err := repo.Create(context.Background(), models.User{Email: "ann@example.com"})
	if !errors.Is(err, ErrDuplicateValue) {
		t.Fatalf("expected ErrDuplicateValue, got %v", err)
	}

	var dup *DuplicateValueError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateValueError, got %T", err)
	}
	if dup.Field != "email" || dup.Value != "ann@example.com" {
		t.Errorf("unexpected duplicate error contents: %+v", dup)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.Create(context.Background(), models.User{})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	changed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(7, "Ann", "ann@example.com", "ann.jpg", "admin", "hash", changed, true, changed)

	mock.ExpectQuery(`SELECT .* FROM users WHERE active = \$1 AND email = \$2`).
		WithArgs(true, "ann@example.com").
		WillReturnRows(rows)

	u, err := repo.FindByEmail(context.Background(), "ann@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %s", u.Role)
	}
	if u.PasswordChangedAt == nil || !u.PasswordChangedAt.Equal(changed) {
		t.Errorf("unexpected PasswordChangedAt: %v", u.PasswordChangedAt)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM users").
		WithArgs(true, int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetAllUsers_AppliesQuery(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(1, "Ann", "ann@example.com", "a.jpg", "user", "h", nil, true, now).
		AddRow(2, "Bob", "bob@example.com", "b.jpg", "guide", "h", nil, true, now)

	mock.ExpectQuery(`SELECT .* FROM users WHERE active = \$1 AND role = \$2 ORDER BY name ASC, id ASC LIMIT 10 OFFSET 10`).
		WithArgs(true, "user").
		WillReturnRows(rows)

	q := models.ListQuery{
		Filters: []models.Filter{{Field: "role", Operator: models.OpEq, Values: []string{"user"}}},
		Sort:    []models.SortField{{Field: "name"}},
		Page:    2,
		Limit:   10,
	}

	users, err := repo.GetAll(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateUser_EmptyUpdateReturnsCurrent(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(3, "Ann", "ann@example.com", "a.jpg", "user", "h", nil, true, time.Now())
	mock.ExpectQuery("SELECT .* FROM users").WillReturnRows(rows)

	u, err := repo.Update(context.Background(), 3, models.UserUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 3 {
		t.Errorf("expected ID=3, got %d", u.ID)
	}
}

func TestUpdateUser_SetsProvidedFields(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	name := "Ann Lee"
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(3, name, "ann@example.com", "a.jpg", "user", "h", nil, true, time.Now())
	mock.ExpectQuery(`UPDATE users SET name = \$1 WHERE active = \$2 AND id = \$3 RETURNING`).
		WithArgs(name, true, int64(3)).
		WillReturnRows(rows)

	u, err := repo.Update(context.Background(), 3, models.UserUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != name {
		t.Errorf("expected name %q, got %q", name, u.Name)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	changedAt := time.Now()
	mock.ExpectExec(`UPDATE users SET password = \$1, password_changed_at = \$2`).
		WithArgs("new-hash", changedAt, true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), 5, "new-hash", changedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeactivate_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET active = \$1`).
		WithArgs(false, true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Deactivate(context.Background(), 5)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_DBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	err := repo.Delete(context.Background(), 5)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
