package repos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"mercadito/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Insert(u domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,name,email,password_hash,role)
		VALUES(?,?,?,?,?)`,
		u.ID, u.Name, u.Email, u.Hash, u.Role)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id,name,email,password_hash,role,created_at,updated_at
		FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id,name,email,password_hash,role,created_at,updated_at
		FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(email string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update writes the mutable fields back. Returns sql.ErrNoRows for an
// unknown id so the service can map it to NotFound.
func (r *UserRepo) Update(u domain.User) error {
	res, err := r.DB.Exec(`
		UPDATE users SET name=?, email=?, password_hash=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		u.Name, u.Email, u.Hash, u.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint,
// e.g. a duplicate email registration racing the existence check.
// modernc.org/sqlite surfaces constraint failures as plain error text.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE")
}
