package repos

import (
	"database/sql"

	"electra/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, customer_name, customer_email, customer_phone, total, status, payment_condition,
  is_paid,
  COALESCE(paid_at,'')       AS paid_at,
  COALESCE(dispatch_date,'') AS dispatch_date,
  COALESCE(assigned_to,'')   AS assigned_to,
  COALESCE(notes,'')         AS notes,
  COALESCE(order_image,'')   AS order_image,
  COALESCE(created_by,'')    AS created_by,
  created_at,
  COALESCE(updated_at,'')    AS updated_at`

// CreateWithItems inserts the order header, its line items and applies the
// stock decrement for each item in a single transaction. Stock is clamped
// at zero: an over-ordered item drives stock to 0 instead of failing.
func (r *OrderRepo) CreateWithItems(o *domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	o.CreatedAt = nowRFC3339()
	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, customer_name, customer_email, customer_phone, total, status, payment_condition,
	     is_paid, dispatch_date, assigned_to, notes, order_image, created_by, created_at)
	  VALUES (?,?,?,?,?,?,?,?,NULLIF(?,''),NULLIF(?,''),NULLIF(?,''),NULLIF(?,''),NULLIF(?,''),?)
	`, o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Total, o.Status, o.PaymentCondition,
		o.IsPaid, o.DispatchDate, o.AssignedTo, o.Notes, o.OrderImage, o.CreatedBy, o.CreatedAt); err != nil {
		return err
	}

	for i, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, line_no, product_id, product_name, quantity, price)
		  VALUES (?,?,?,?,?,?)
		`, o.ID, i+1, it.ProductID, it.ProductName, it.Quantity, it.Price); err != nil {
			return err
		}
		if _, err := tx.Exec(`
		  UPDATE products SET stock = MAX(0, stock - ?), updated_at = ? WHERE id = ?
		`, it.Quantity, o.CreatedAt, it.ProductID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, err
	}
	if err := r.db.Select(&o.Items, `
		SELECT product_id, product_name, quantity, price
		FROM order_items WHERE order_id = ? ORDER BY line_no
	`, id); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `SELECT `+orderCols+` FROM orders ORDER BY datetime(created_at) DESC`)
	if err != nil {
		return nil, err
	}
	return out, r.attachItems(out)
}

func (r *OrderRepo) ListByStatus(status string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders WHERE status = ? ORDER BY datetime(created_at) DESC
	`, status)
	if err != nil {
		return nil, err
	}
	return out, r.attachItems(out)
}

// ListForStaff returns the personal queue of a non-admin staff member:
// orders assigned to them plus unassigned orders (visible to all staff).
func (r *OrderRepo) ListForStaff(staffID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		WHERE assigned_to = ? OR assigned_to IS NULL
		ORDER BY datetime(created_at) DESC
	`, staffID)
	if err != nil {
		return nil, err
	}
	return out, r.attachItems(out)
}

func (r *OrderRepo) attachItems(orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	query, args, err := sqlx.In(`
		SELECT order_id, product_id, product_name, quantity, price
		FROM order_items WHERE order_id IN (?) ORDER BY order_id, line_no
	`, ids)
	if err != nil {
		return err
	}
	var rows []struct {
		OrderID string `db:"order_id"`
		domain.OrderItem
	}
	if err := r.db.Select(&rows, query, args...); err != nil {
		return err
	}
	byOrder := make(map[string][]domain.OrderItem, len(orders))
	for _, row := range rows {
		byOrder[row.OrderID] = append(byOrder[row.OrderID], row.OrderItem)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return nil
}

// Update rewrites the mutable scalar fields of an order. Line items and the
// total are fixed at creation time; is_paid/paid_at move through MarkPaid.
func (r *OrderRepo) Update(o domain.Order) error {
	res, err := r.db.Exec(`
		UPDATE orders SET
		  customer_name = ?, customer_email = ?, customer_phone = ?,
		  status = ?, payment_condition = ?,
		  dispatch_date = NULLIF(?,''), assigned_to = NULLIF(?,''),
		  notes = NULLIF(?,''), order_image = NULLIF(?,''),
		  updated_at = ?
		WHERE id = ?
	`, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.Status, o.PaymentCondition,
		o.DispatchDate, o.AssignedTo, o.Notes, o.OrderImage,
		nowRFC3339(), o.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkPaid sets is_paid and stamps paid_at. Calling it again simply
// re-stamps the timestamp.
func (r *OrderRepo) MarkPaid(id string) (string, error) {
	ts := nowRFC3339()
	res, err := r.db.Exec(`
		UPDATE orders SET is_paid = 1, paid_at = ?, updated_at = ? WHERE id = ?
	`, ts, ts, id)
	if err != nil {
		return "", err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", sql.ErrNoRows
	}
	return ts, nil
}

func (r *OrderRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
