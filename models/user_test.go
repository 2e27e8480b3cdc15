package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_SetAndCheckPassword(t *testing.T) {
	u := &User{Username: "alice"}
	require.NoError(t, u.SetPasswordWithCost("s3cret", bcrypt.MinCost))

	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestUser_JSONHidesHash(t *testing.T) {
	u := User{Username: "alice", PasswordHash: "hash"}
	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice"}`, string(b))
}

func TestPerson_JSONShape(t *testing.T) {
	p := Person{
		PersonID:     7,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PhoneNumbers: []Phone{{PersonID: 7, Number: "555-0100", Label: "home"}},
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.EqualValues(t, 7, out["person_id"])
	assert.Equal(t, []any{map[string]any{"number": "555-0100", "label": "home"}}, out["phone_numbers"])
}
