package domain

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Staff password hash is stored but never serialized outward.
type Staff struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"password_hash" json:"-"`
	Role      string `db:"role" json:"role"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
