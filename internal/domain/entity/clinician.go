package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RoleAdmin     = "admin"
	RoleClinician = "profesional"
	RoleAssistant = "asistente"
)

// Clinician representa un profesional de la clínica (usuario de la app y
// owner de inventario: el stock se controla por profesional).
type Clinician struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
