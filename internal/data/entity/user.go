package entity

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	BaseNoDelete
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
