package repositories

import (
	"database/sql"
	"fmt"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) Create(name, email, passwordHash, role string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password_hash, role, status)
		VALUES (?,?,?,?,'active')`,
		name, email, passwordHash, role,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) CountByEmail(email string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email=?`, email).Scan(&n)
	return n, err
}

// GetByEmail returns the user and its password hash for login checks.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, email, password_hash, role, status, created_at
		FROM users WHERE email=? LIMIT 1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, fmt.Errorf("invalid user id")
	}
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, role, status, created_at
		FROM users WHERE id=? LIMIT 1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.CreatedAt)
	return u, err
}
