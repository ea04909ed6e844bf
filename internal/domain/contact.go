package domain

import (
	"time"
)

// DeliveryKind distinguishes backends that persist a submission from
// backends that relay it as an email.
type DeliveryKind int

const (
	KindPersistence DeliveryKind = iota
	KindRelay
)

func (k DeliveryKind) String() string {
	switch k {
	case KindPersistence:
		return "persistence"
	case KindRelay:
		return "relay"
	}
	return "unknown"
}

// Submission is one contact form entry
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Receipt confirms that a delivery backend completed its action
type Receipt struct {
	ID        string
	Backend   string
	CreatedAt time.Time
}

// ContactInquiry is the stored form of a Submission
type ContactInquiry struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"-" json:"id"`
	Name      string    `gorm:"not null" bson:"name" json:"name"`
	Email     string    `gorm:"not null;index" bson:"email" json:"email"`
	Message   string    `gorm:"type:text;not null" bson:"message" json:"message"`
	CreatedAt time.Time `gorm:"index" bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// NewContactInquiry builds the record for s, stamped at now
func NewContactInquiry(s Submission, now time.Time) *ContactInquiry {
	return &ContactInquiry{
		Name:      s.Name,
		Email:     s.Email,
		Message:   s.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName specifies the table name for ContactInquiry
func (ContactInquiry) TableName() string {
	return "contact_inquiries"
}
