package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Patient is a single patient record. The nic field is unique across the
// collection (enforced by a unique index, see repository.NewMongoPatientRepo).
type Patient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NIC       string             `bson:"nic" json:"nic"`
	Phone     string             `bson:"phone" json:"phone"`
	Gender    string             `bson:"gender" json:"gender"`
	DOB       *time.Time         `bson:"dob,omitempty" json:"dob,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
