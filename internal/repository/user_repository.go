package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/scarevault/scarevault/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.QueryRow(`
		INSERT INTO users (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		u.ID, u.Username, u.PasswordHash, u.Role).Scan(&u.CreatedAt)
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRow(`
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateSession stores a bearer session token.
func (r *UserRepository) CreateSession(token string, userID uuid.UUID, role models.UserRole, expiresAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO sessions (token, user_id, role, expires_at)
		VALUES ($1, $2, $3, $4)`,
		token, userID, role, expiresAt.Unix())
	return err
}

// GetSession resolves a token to its user and role. Returns nil when the
// token is unknown.
func (r *UserRepository) GetSession(token string) (userID uuid.UUID, role models.UserRole, expiresAt int64, err error) {
	err = r.db.QueryRow(`
		SELECT user_id, role, expires_at FROM sessions WHERE token = $1`, token).
		Scan(&userID, &role, &expiresAt)
	if err == sql.ErrNoRows {
		return uuid.Nil, "", 0, nil
	}
	return userID, role, expiresAt, err
}

func (r *UserRepository) DeleteSession(token string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE token = $1`, token)
	return err
}
