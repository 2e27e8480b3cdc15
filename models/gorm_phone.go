package models

// Phone is one phone number owned by a Person.
// It corresponds to the 'phone' table, which has no primary key of its own.
type Phone struct {
	PersonID int64  `gorm:"column:person_id;not null;index" db:"person_id" json:"-"` // Foreign key to person table
	Number   string `gorm:"column:number;not null" db:"number" json:"number"`
	Label    string `gorm:"column:label;not null" db:"label" json:"label"`
}

// TableName explicitly sets the table name for GORM.
func (Phone) TableName() string {
	return "phone"
}
