package repos

import (
	"database/sql"

	"electra/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, description, price, category, stock,
  COALESCE(image,'')      AS image,
  created_at,
  COALESCE(updated_at,'') AS updated_at`

// List returns all products, optionally filtered by a name/description
// substring match.
func (r *ProductRepo) List(q string) ([]domain.Product, error) {
	var out []domain.Product
	if q == "" {
		err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY datetime(created_at) DESC`)
		return out, err
	}
	pat := "%" + q + "%"
	err := r.db.Select(&out, `
		SELECT `+productCols+`
		FROM products
		WHERE LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)
		ORDER BY datetime(created_at) DESC
	`, pat, pat)
	return out, err
}

func (r *ProductRepo) ListByCategory(category string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products WHERE category = ? ORDER BY datetime(created_at) DESC
	`, category)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	p.CreatedAt = nowRFC3339()
	_, err := r.db.Exec(`
		INSERT INTO products(id, name, description, price, category, stock, image, created_at)
		VALUES (?,?,?,?,?,?,NULLIF(?,''),?)
	`, p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock, p.Image, p.CreatedAt)
	return err
}

// Update overwrites all mutable fields, stock included. Last write wins;
// a concurrent order-side decrement is not reconciled against this.
func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
		UPDATE products SET
		  name = ?, description = ?, price = ?, category = ?, stock = ?,
		  image = NULLIF(?,''), updated_at = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.Category, p.Stock, p.Image, nowRFC3339(), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stock reads the current stock level; used by tests and the analytics view.
func (r *ProductRepo) Stock(id string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT stock FROM products WHERE id = ?`, id)
	return n, err
}
