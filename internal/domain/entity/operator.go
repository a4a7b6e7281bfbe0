package entity

// Roles de operador.
const (
	RoleSupervisor = "supervisor"
	RoleCounter    = "contador"
)

// Operator es quien ejecuta el conteo. El hash es bcrypt.
type Operator struct {
	Username     string
	Role         string
	PasswordHash string
}
