package models

// Seat capacity bounds enforced on vehicle registration.
const (
	VehicleMinCapacity = 1
	VehicleMaxCapacity = 6
)

type Vehicle struct {
	ID       uint   `json:"id_vehiculo"`
	Plate    string `json:"placa"`
	Brand    string `json:"marca"`
	Model    string `json:"modelo"`
	Capacity int    `json:"capacidad"`
	OwnerID  uint   `json:"id_usuario,omitempty"`
	PhotoRef string `json:"foto_vehiculo,omitempty"`
}
