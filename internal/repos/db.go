package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite is single-writer; one pooled connection also keeps an
	// in-memory DSN pointing at a single database.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog if DB is empty (idempotent; safe to run every start)
	if err := seedProducts(db); err != nil {
		return nil, err
	}
	// Ensure a default admin + staff exist (idempotent)
	if err := seedStaff(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  category TEXT NOT NULL CHECK (category IN
    ('fans','lights','switches','sockets','wires','conduits','mcbs','panels','tools','accessories')),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  image TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Staff
CREATE TABLE IF NOT EXISTS staff(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'staff' CHECK (role IN ('admin','staff')),
  phone TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_staff_email_nocase ON staff(LOWER(email));

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','dc','invoice','dispatched')),
  payment_condition TEXT NOT NULL DEFAULT 'immediate' CHECK (payment_condition IN ('immediate','days15','days30')),
  is_paid INTEGER NOT NULL DEFAULT 0,
  paid_at TEXT,
  dispatch_date TEXT,
  assigned_to TEXT REFERENCES staff(id) ON DELETE SET NULL,
  notes TEXT,
  order_image TEXT,
  created_by TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_status     ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_assigned   ON orders(assigned_to);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  line_no INTEGER NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, line_no)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,description,price,category,stock) VALUES
	  ('fan-ceiling-prem','Ceiling Fan - Premium','High-quality ceiling fan with 3-speed settings and remote control',129.99,'fans',25),
	  ('led-panel-24w','LED Panel Light 24W','Energy-efficient LED panel light for residential and commercial use',49.99,'lights',50),
	  ('switch-mod-6g','Modular Switch 6-Gang','Premium modular switch plate with 6 switches',22.50,'switches',100),
	  ('socket-usb-wall','USB Wall Socket','Wall socket with built-in USB charging ports',35.99,'sockets',75),
	  ('wire-cu-25-100','Copper Wire 2.5mm - 100m','High-grade copper wire for residential installations',89.99,'wires',30),
	  ('mcb-sp-32a','MCB Single Pole 32A','Miniature circuit breaker for electrical protection',18.50,'mcbs',80)`)

	return tx.Commit()
}

// seedStaff ensures one admin and two staff accounts exist (idempotent).
func seedStaff(db *sqlx.DB) error {
	type s struct {
		ID, Name, Email, Role, Hash string
	}
	mk := func(id, name, email, role, raw string) s {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 10)
		return s{ID: id, Name: name, Email: email, Role: role, Hash: string(h)}
	}

	members := []s{
		mk("st-admin", "Admin", "admin@electra.test", "admin", "Passw0rd!"),
		mk("st-priya", "Priya", "priya@electra.test", "staff", "Passw0rd!"),
		mk("st-ravi", "Ravi", "ravi@electra.test", "staff", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, m := range members {
		if _, err := tx.Exec(`
			INSERT INTO staff(id,name,email,password_hash,role)
			SELECT ?,?,?,?,?
			WHERE NOT EXISTS (SELECT 1 FROM staff WHERE LOWER(email)=LOWER(?))
		`, m.ID, m.Name, m.Email, m.Hash, m.Role, m.Email); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// nowRFC3339 is the canonical timestamp format for rows we stamp ourselves.
func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
