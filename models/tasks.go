package models

// SlotReleasePayload asks the worker to free a doctor slot left behind by a cancellation.
type SlotReleasePayload struct {
	DoctorID string `json:"doctorId"`
	SlotKey  string `json:"slotKey"`
}

// Appointment email events.
const (
	EventBooked    = "booked"
	EventCancelled = "cancelled"
)

// AppointmentEmailPayload asks the worker to email the patient about an appointment.
type AppointmentEmailPayload struct {
	AppointmentID string `json:"appointmentId"`
	Event         string `json:"event"`
}
