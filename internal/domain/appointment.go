package domain

import "time"

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked fixed-length slot.
// The end time is implicit: StartTime + the grid's slot duration.
type Appointment struct {
	ID        int64
	StartTime time.Time
	Name      string
	Email     string
	Phone     *string
	Reason    *string
	Status    AppointmentStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusActive
}

// IsCancelled returns true if the appointment has been cancelled.
// Cancellation is terminal: the record is kept for history but the
// appointment is no longer addressable through the public API.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeRescheduled returns true if the appointment may change its slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusActive
}

// UpdateParams holds the appointment fields after a patch has been applied.
// The repository writes them with a single UPDATE of the same row, so the
// id and created_at are preserved.
type UpdateParams struct {
	StartTime time.Time
	Name      string
	Email     string
	Phone     *string
	Reason    *string
}
