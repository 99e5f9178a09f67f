package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
)

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

const userSelect = `
	SELECT id, name, email, password_hash, role, faculty_id, committee_id, created_at
	FROM users
`

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, faculty_id, committee_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	user.CreatedAt = time.Now()
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.FacultyID,
		user.CommitteeID,
		user.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id
	return nil
}

// GetByID retrieves a user. Returns nil when no row exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.queryOne(ctx, userSelect+" WHERE id = ?", id)
}

// GetByEmail retrieves a user by email. Returns nil when no row exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.queryOne(ctx, userSelect+" WHERE email = ?", email)
}

// ListByRole returns all users with the given role
func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, userSelect+" WHERE role = ? ORDER BY id", role)
	if err != nil {
		r.logger.Error("Failed to list users", zap.String("role", role), zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*entity.User, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx, query, args...)
	user, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanUser(scan func(dest ...interface{}) error) (*entity.User, error) {
	var user entity.User
	var facultyID, committeeID sql.NullInt64

	if err := scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&facultyID,
		&committeeID,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	if facultyID.Valid {
		user.FacultyID = &facultyID.Int64
	}
	if committeeID.Valid {
		user.CommitteeID = &committeeID.Int64
	}
	return &user, nil
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
