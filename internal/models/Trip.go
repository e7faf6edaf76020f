package models

// TripStatus is the backend's lifecycle state for a trip. Expiry is
// computed server-side; the client only renders it.
type TripStatus string

const (
	TripStatusActive    TripStatus = "Activo"
	TripStatusFull      TripStatus = "Lleno"
	TripStatusCancelled TripStatus = "Cancelado"
	TripStatusCompleted TripStatus = "Completado"
	TripStatusExpired   TripStatus = "Expirado"
)

type Trip struct {
	ID             uint       `json:"id_viaje"`
	Origin         string     `json:"origen"`
	Destination    string     `json:"destino"`
	Departure      APITime    `json:"fecha_salida"`
	Fare           int        `json:"tarifa"`
	TotalSeats     int        `json:"cupos_totales"`
	SeatsAvailable int        `json:"cupos_disponibles"`
	Status         TripStatus `json:"estado"`
	DriverID       uint       `json:"id_conductor"`
	DriverName     string     `json:"nombre_conductor,omitempty"`
	VehicleID      uint       `json:"id_vehiculo"`
	VehicleBrand   string     `json:"marca,omitempty"`
	VehicleModel   string     `json:"modelo,omitempty"`
}

func (t Trip) IsActive() bool {
	return t.Status == TripStatusActive
}

// OwnedBy reports whether the given user is the trip's driver.
func (t Trip) OwnedBy(userID uint) bool {
	return t.DriverID == userID
}
