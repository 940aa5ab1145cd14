package models

import "time"

// Patient is a registered end user of the booking app.
type Patient struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Image        string    `bson:"image" json:"image"`
	Phone        string    `bson:"phone" json:"phone"`
	Address      Address   `bson:"address" json:"address"`
	Gender       string    `bson:"gender" json:"gender"`
	DOB          string    `bson:"dob" json:"dob"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Defaults applied at registration, matching what the clients render for unset fields.
const (
	DefaultPhone = "0000000000"
	NotSelected  = "Not Selected"
)

// PatientUpdate is a self-service partial profile update; nil fields are untouched.
type PatientUpdate struct {
	Name    *string
	Phone   *string
	Address *Address
	DOB     *string
	Gender  *string
	Image   *string
}

// IsEmpty reports whether the update would change nothing.
func (u PatientUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Address == nil && u.DOB == nil &&
		u.Gender == nil && u.Image == nil
}

// PatientSummary is the live patient data joined into a doctor's appointment list.
type PatientSummary struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	DOB   string `json:"dob"`
}
