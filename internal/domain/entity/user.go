package entity

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User usuario interno de la agencia.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string // texto plano heredado o hash bcrypt ($2a$/$2b$)
	Role     string
	ClientID string // cliente asociado (opcional)
}
