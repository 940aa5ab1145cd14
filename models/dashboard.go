package models

// AdminDashboard aggregates clinic-wide counts.
type AdminDashboard struct {
	Doctors            int64         `json:"doctors"`
	Appointments       int64         `json:"appointments"`
	Patients           int64         `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}

// DoctorDashboard aggregates one doctor's appointments.
type DoctorDashboard struct {
	Earnings           float64       `json:"earnings"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}
