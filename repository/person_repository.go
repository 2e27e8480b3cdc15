package repository

import (
	"errors"
	"fmt"

	"github.com/camden-git/contactsbackend/models"
	"gorm.io/gorm"
)

// editable person columns; person_id is store-assigned
var personUpdateColumns = []string{
	"first_name", "last_name", "birthday", "email",
	"address_line1", "address_line2", "city", "prov", "country", "postcode",
}

// PersonRepository handles database operations for Person and related Phone entities
type PersonRepository struct {
	DB *gorm.DB
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

func orderPhones(db *gorm.DB) *gorm.DB {
	return db.Order("rowid ASC")
}

// GetByID retrieves a person by their ID, preloading phone numbers in the order they were added
func (r *PersonRepository) GetByID(id int64) (*models.Person, error) {
	var person models.Person
	err := r.DB.Preload("PhoneNumbers", orderPhones).First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person by ID %d: %w", id, err)
	}
	if person.PhoneNumbers == nil {
		person.PhoneNumbers = []models.Phone{}
	}
	return &person, nil
}

// Update writes every person column of person; its phone numbers are left untouched
func (r *PersonRepository) Update(person *models.Person) error {
	result := r.DB.Model(&models.Person{PersonID: person.PersonID}).
		Select(personUpdateColumns).
		Updates(person)

	if result.Error != nil {
		return fmt.Errorf("failed to update person ID %d: %w", person.PersonID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplacePhones swaps all phone numbers of a person in one transaction
func (r *PersonRepository) ReplacePhones(personID int64, phones []models.Phone) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Person{}).Where("person_id = ?", personID).Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to check person ID %d: %w", personID, err)
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("person_id = ?", personID).Delete(&models.Phone{}).Error; err != nil {
			return fmt.Errorf("failed to clear phones for person ID %d: %w", personID, err)
		}
		if len(phones) == 0 {
			return nil
		}

		rows := make([]models.Phone, len(phones))
		for i, p := range phones {
			rows[i] = models.Phone{PersonID: personID, Number: p.Number, Label: p.Label}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to add phones for person ID %d: %w", personID, err)
		}
		return nil
	})
}

// Count returns the number of people in the database
func (r *PersonRepository) Count() (int64, error) {
	var n int64
	if err := r.DB.Model(&models.Person{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count people: %w", err)
	}
	return n, nil
}
