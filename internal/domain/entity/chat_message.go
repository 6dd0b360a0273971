package entity

import "time"

// Roles de la conversación con el asistente.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage mensaje de la conversación con el asistente.
type ChatMessage struct {
	Role      string
	Text      string
	Thinking  bool // la respuesta se pidió con razonamiento profundo
	CreatedAt time.Time
}
