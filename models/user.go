package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User is an account that can sign in to the contacts application.
type User struct {
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"` // "-" means don't include in JSON responses
}

// SetPassword hashes the given password and sets it on the user model.
func (u *User) SetPassword(password string) error {
	return u.SetPasswordWithCost(password, bcrypt.DefaultCost)
}

// SetPasswordWithCost is SetPassword with an explicit bcrypt cost.
func (u *User) SetPasswordWithCost(password string, cost int) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the given password matches the user's hashed password.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
