package models

// Person represents a contact in the database.
// It corresponds to the 'person' table and is shared by the sqlx queries
// (db tags) and the GORM repository.
type Person struct {
	PersonID     int64  `gorm:"column:person_id;primaryKey;autoIncrement" db:"person_id" json:"person_id"`
	FirstName    string `gorm:"column:first_name;not null" db:"first_name" json:"first_name"`
	LastName     string `gorm:"column:last_name;not null" db:"last_name" json:"last_name"`
	Birthday     string `gorm:"column:birthday;not null" db:"birthday" json:"birthday"` // YYYY-MM-DD
	Email        string `gorm:"column:email;not null" db:"email" json:"email"`
	AddressLine1 string `gorm:"column:address_line1;not null" db:"address_line1" json:"address_line1"`
	AddressLine2 string `gorm:"column:address_line2;not null" db:"address_line2" json:"address_line2"`
	City         string `gorm:"column:city;not null" db:"city" json:"city"`
	Prov         string `gorm:"column:prov;not null" db:"prov" json:"prov"`
	Country      string `gorm:"column:country;not null" db:"country" json:"country"`
	Postcode     string `gorm:"column:postcode;not null" db:"postcode" json:"postcode"`

	// Relationships
	PhoneNumbers []Phone `gorm:"foreignKey:PersonID;references:PersonID;constraint:OnDelete:CASCADE" db:"-" json:"phone_numbers"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "person"
}
