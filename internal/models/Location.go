package models

// Location is a named place shared by all users, used as an origin,
// destination or pickup suggestion.
type Location struct {
	ID   uint   `json:"id_ubicacion"`
	Name string `json:"nombre"`
}
