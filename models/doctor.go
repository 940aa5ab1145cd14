package models

import "time"

// Doctor is the directory record for a clinician. BookedSlots holds the slot keys
// of every non-cancelled appointment referencing this doctor.
type Doctor struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Image        string    `bson:"image" json:"image"`
	Speciality   string    `bson:"speciality" json:"speciality"`
	Degree       string    `bson:"degree" json:"degree"`
	Experience   string    `bson:"experience" json:"experience"`
	About        string    `bson:"about" json:"about"`
	Availability bool      `bson:"availability" json:"availability"`
	FeeStructure float64   `bson:"feeStructure" json:"feeStructure"`
	Address      Address   `bson:"address" json:"address"`
	BookedSlots  []string  `bson:"bookedSlots" json:"slots_booked"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DoctorPublicView is what patient-facing callers see: no email, no credentials.
type DoctorPublicView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Speciality   string   `json:"speciality"`
	Degree       string   `json:"degree"`
	Experience   string   `json:"experience"`
	About        string   `json:"about"`
	Availability bool     `json:"availability"`
	FeeStructure float64  `json:"feeStructure"`
	Address      Address  `json:"address"`
	BookedSlots  []string `json:"slots_booked"`
}

// PublicView strips private fields from the doctor record.
func (d Doctor) PublicView() DoctorPublicView {
	slots := d.BookedSlots
	if slots == nil {
		slots = []string{}
	}
	return DoctorPublicView{
		ID:           d.ID,
		Name:         d.Name,
		Image:        d.Image,
		Speciality:   d.Speciality,
		Degree:       d.Degree,
		Experience:   d.Experience,
		About:        d.About,
		Availability: d.Availability,
		FeeStructure: d.FeeStructure,
		Address:      d.Address,
		BookedSlots:  slots,
	}
}

// HasSlot reports whether key is currently reserved on the doctor.
func (d Doctor) HasSlot(key string) bool {
	for _, s := range d.BookedSlots {
		if s == key {
			return true
		}
	}
	return false
}

// DoctorFilter narrows a directory listing. The zero value lists everyone.
type DoctorFilter struct {
	Speciality    string
	AvailableOnly bool
}

// DoctorUpdate carries a partial profile update; nil fields are left untouched.
type DoctorUpdate struct {
	AddressLine1 *string
	AddressLine2 *string
	FeeStructure *float64
	Availability *bool
	About        *string
	Image        *string
}

// IsEmpty reports whether the update would change nothing.
func (u DoctorUpdate) IsEmpty() bool {
	return u.AddressLine1 == nil && u.AddressLine2 == nil && u.FeeStructure == nil &&
		u.Availability == nil && u.About == nil && u.Image == nil
}

// NewDoctorRequest is the admin onboarding payload.
type NewDoctorRequest struct {
	Name         string
	Email        string
	Password     string
	Speciality   string
	Degree       string
	Experience   string
	About        string
	FeeStructure float64
	Address      Address
	Image        string
}
