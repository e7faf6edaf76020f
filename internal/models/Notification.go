package models

type Notification struct {
	ID        uint    `json:"id_notificacion"`
	Type      string  `json:"tipo,omitempty"`
	Message   string  `json:"mensaje"`
	Read      bool    `json:"leida"`
	CreatedAt APITime `json:"fecha_creacion"`
}
