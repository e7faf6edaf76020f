package models

// User is the account record the backend returns on login and token
// verification. Field names follow the backend's JSON contract.
type User struct {
	ID       uint   `json:"id_usuario"`
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Phone    string `json:"telefono"`
	PhotoRef string `json:"foto_perfil,omitempty"`

	// Raw role flags as reported by the backend. Role resolution never
	// trusts these alone; see the roles package.
	Roles []Role `json:"roles,omitempty"`
}
