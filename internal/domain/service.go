package domain

// BarberService represents a service offered by the barbershop
type BarberService struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
}
