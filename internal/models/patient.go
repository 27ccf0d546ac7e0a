package models

import "time"

// Patient is one row per person seeking care. DNI is the business key;
// dni and email carry unique indexes so the database has the final word on
// uniqueness even if two requests pass the handler pre-check at once.
type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Personal data
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	DNI       string `gorm:"column:dni;size:20;not null;uniqueIndex" json:"dni"`

	// Contact
	Email *string `gorm:"size:255;uniqueIndex" json:"email"`
	Phone *string `gorm:"size:20" json:"phone"`

	// Additional info
	BirthDate *time.Time `gorm:"type:date" json:"birth_date"`
	Address   *string    `gorm:"size:255" json:"address"`

	// Metadata. UpdatedAt is managed by the repository so it stays NULL
	// until the record is mutated for the first time.
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
