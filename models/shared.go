package models

// Address is the two-line postal address shown on doctor and patient profiles.
type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2" json:"line2"`
}
