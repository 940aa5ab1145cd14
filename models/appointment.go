package models

import (
	"regexp"
	"strings"
	"time"
)

var slotDatePattern = regexp.MustCompile(`^\d{1,2}_\d{1,2}_\d{4}$`)

// SlotKey joins a DD_MM_YYYY date token and a time token into the key stored on the doctor.
func SlotKey(slotDate, slotTime string) string {
	return slotDate + " " + slotTime
}

// ValidSlot reports whether the date token is DD_MM_YYYY shaped and the time token is set.
func ValidSlot(slotDate, slotTime string) bool {
	return slotDatePattern.MatchString(slotDate) && strings.TrimSpace(slotTime) != ""
}

// PatientSnapshot is the patient display data frozen at booking time.
type PatientSnapshot struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image" json:"image"`
	Phone string `bson:"phone" json:"phone"`
}

// DoctorSnapshot is the doctor display data frozen at booking time.
type DoctorSnapshot struct {
	Name       string  `bson:"name" json:"name"`
	Speciality string  `bson:"speciality" json:"speciality"`
	Image      string  `bson:"image" json:"image"`
	Address    Address `bson:"address" json:"address"`
}

// Appointment is a booking of one doctor slot by one patient. Cancelled, Payment and
// Completed only ever move from false to true.
type Appointment struct {
	ID          string          `bson:"id" json:"id"`
	PatientID   string          `bson:"patientId" json:"userId"`
	DoctorID    string          `bson:"doctorId" json:"docId"`
	SlotDate    string          `bson:"slotDate" json:"slotDate"`
	SlotTime    string          `bson:"slotTime" json:"slotTime"`
	SlotKey     string          `bson:"slotKey" json:"slotKey"`
	PatientData PatientSnapshot `bson:"patientData" json:"userData"`
	DoctorData  DoctorSnapshot  `bson:"doctorData" json:"docData"`
	Amount      float64         `bson:"amount" json:"amount"`
	Cancelled   bool            `bson:"cancelled" json:"cancelled"`
	Payment     bool            `bson:"payment" json:"payment"`
	Completed   bool            `bson:"completed" json:"isCompleted"`
	OrderID     string          `bson:"orderId,omitempty" json:"orderId,omitempty"`
	PaymentID   string          `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Signature   string          `bson:"signature,omitempty" json:"-"`
	CreatedAt   time.Time       `bson:"createdAt" json:"date"`

	// Patient is filled in for doctor-facing listings only.
	Patient *PatientSummary `bson:"-" json:"patient,omitempty"`
}

// PaymentVerified reports whether a verified gateway payment is recorded.
func (a Appointment) PaymentVerified() bool {
	return a.Payment && a.PaymentID != "" && a.OrderID != ""
}

// Earning reports whether the appointment counts toward a doctor's earnings.
func (a Appointment) Earning() bool {
	return a.Completed || a.Payment
}
