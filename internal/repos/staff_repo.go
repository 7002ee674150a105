package repos

import (
	"database/sql"

	"electra/internal/domain"

	"github.com/jmoiron/sqlx"
)

type StaffRepo struct{ db *sqlx.DB }

func NewStaffRepo(db *sqlx.DB) *StaffRepo { return &StaffRepo{db: db} }

const staffCols = `
  id, name, email, password_hash, role,
  COALESCE(phone,'') AS phone,
  created_at`

func (r *StaffRepo) List() ([]domain.Staff, error) {
	var out []domain.Staff
	err := r.db.Select(&out, `SELECT `+staffCols+` FROM staff ORDER BY LOWER(email)`)
	return out, err
}

func (r *StaffRepo) Get(id string) (domain.Staff, error) {
	var s domain.Staff
	err := r.db.Get(&s, `SELECT `+staffCols+` FROM staff WHERE id = ?`, id)
	return s, err
}

func (r *StaffRepo) ByEmail(email string) (domain.Staff, error) {
	var s domain.Staff
	err := r.db.Get(&s, `SELECT `+staffCols+` FROM staff WHERE LOWER(email) = LOWER(?)`, email)
	return s, err
}

func (r *StaffRepo) EmailTaken(email, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM staff WHERE LOWER(email) = LOWER(?) AND id != ?`, email, excludeID)
	return n > 0, err
}

func (r *StaffRepo) Create(s *domain.Staff) error {
	s.CreatedAt = nowRFC3339()
	_, err := r.db.Exec(`
		INSERT INTO staff(id, name, email, password_hash, role, phone, created_at)
		VALUES (?,?,?,?,?,NULLIF(?,''),?)
	`, s.ID, s.Name, s.Email, s.Hash, s.Role, s.Phone, s.CreatedAt)
	return err
}

// Update rewrites profile fields; the hash is only touched when non-empty.
func (r *StaffRepo) Update(s domain.Staff) error {
	res, err := r.db.Exec(`
		UPDATE staff SET
		  name = ?, email = ?, role = ?, phone = NULLIF(?,''),
		  password_hash = CASE WHEN ? != '' THEN ? ELSE password_hash END
		WHERE id = ?
	`, s.Name, s.Email, s.Role, s.Phone, s.Hash, s.Hash, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *StaffRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM staff WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
