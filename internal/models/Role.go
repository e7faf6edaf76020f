package models

// RoleNameDriver is the backend's name for the driver role.
const RoleNameDriver = "Conductor"

type Role struct {
	ID     uint   `json:"id_rol"`
	Name   string `json:"nombre_rol"`
	Active bool   `json:"rol_activo"`
}

// IsActiveDriver reports whether this role entry marks the user as an
// active driver.
func (r Role) IsActiveDriver() bool {
	return r.Name == RoleNameDriver && r.Active
}
