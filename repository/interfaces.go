package repository

import (
	"github.com/camden-git/contactsbackend/models"
)

// PersonRepositoryInterface defines the methods for single-person data operations
type PersonRepositoryInterface interface {
	GetByID(id int64) (*models.Person, error)
	Update(person *models.Person) error
	ReplacePhones(personID int64, phones []models.Phone) error
	Count() (int64, error)
}
