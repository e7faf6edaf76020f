package models

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "Pendiente"
	ReservationStatusAccepted  ReservationStatus = "Aceptada"
	ReservationStatusRejected  ReservationStatus = "Rechazada"
	ReservationStatusCancelled ReservationStatus = "Cancelada"
)

type Reservation struct {
	ID            uint              `json:"id_reserva"`
	TripID        uint              `json:"id_viaje"`
	PassengerID   uint              `json:"id_pasajero"`
	PassengerName string            `json:"nombre_pasajero,omitempty"`
	Seats         int               `json:"cupos_reservados"`
	PickupPoint   string            `json:"punto_recogida"`
	DropPoint     string            `json:"punto_destino,omitempty"`
	Status        ReservationStatus `json:"estado"`
	CreatedAt     APITime           `json:"fecha_creacion"`

	// Trip fields the backend joins onto reservation listings.
	Origin      string  `json:"origen,omitempty"`
	Destination string  `json:"destino,omitempty"`
	Departure   APITime `json:"fecha_salida,omitempty"`
	Fare        int     `json:"tarifa,omitempty"`
}

// IsOpen reports whether the reservation is still pending or accepted,
// the only states a passenger may still act on.
func (r Reservation) IsOpen() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusAccepted
}
