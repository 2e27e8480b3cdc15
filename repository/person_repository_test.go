package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/contactsbackend/database"
	"github.com/camden-git/contactsbackend/models"
)

func setup(t *testing.T) (*database.Store, *PersonRepository) {
	t.Helper()
	store := database.NewStore(filepath.Join(t.TempDir(), "data.sqlite"), zerolog.Nop())
	require.NoError(t, store.EnsureSchema(context.Background()))

	db, err := store.OpenGorm()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return store, NewPersonRepository(db)
}

func addPerson(t *testing.T, store *database.Store, first string, phones ...models.Phone) int64 {
	t.Helper()
	id, err := store.AddPerson(context.Background(), models.Person{
		FirstName:    first,
		LastName:     "Tester",
		Birthday:     "2000-02-29",
		Email:        first + "@example.com",
		PhoneNumbers: phones,
	})
	require.NoError(t, err)
	return id
}

func TestPersonRepository_GetByID(t *testing.T) {
	store, repo := setup(t)
	id := addPerson(t, store, "Ada",
		models.Phone{Number: "555-0100", Label: "home"},
		models.Phone{Number: "555-0101", Label: "work"},
	)

	p, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "2000-02-29", p.Birthday)
	assert.Equal(t, []models.Phone{
		{PersonID: id, Number: "555-0100", Label: "home"},
		{PersonID: id, Number: "555-0101", Label: "work"},
	}, p.PhoneNumbers)

	noPhones := addPerson(t, store, "Grace")
	p, err = repo.GetByID(noPhones)
	require.NoError(t, err)
	assert.NotNil(t, p.PhoneNumbers)
	assert.Empty(t, p.PhoneNumbers)

	_, err = repo.GetByID(9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPersonRepository_Update(t *testing.T) {
	store, repo := setup(t)
	id := addPerson(t, store, "Ada", models.Phone{Number: "1", Label: "home"})

	p, err := repo.GetByID(id)
	require.NoError(t, err)
	p.LastName = "King"
	p.City = ""
	p.Email = "ada@analytical.engine"
	require.NoError(t, repo.Update(p))

	people, err := store.GetPeopleList(context.Background(), database.SortPersonID)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "King", people[0].LastName)
	assert.Equal(t, "ada@analytical.engine", people[0].Email)
	assert.Len(t, people[0].PhoneNumbers, 1, "phones are not touched by Update")

	err = repo.Update(&models.Person{PersonID: 4242, FirstName: "Nobody"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPersonRepository_ReplacePhones(t *testing.T) {
	store, repo := setup(t)
	id := addPerson(t, store, "Ada",
		models.Phone{Number: "old-1", Label: "home"},
		models.Phone{Number: "old-2", Label: "work"},
	)

	require.NoError(t, repo.ReplacePhones(id, []models.Phone{{Number: "new-1", Label: "cell"}}))
	p, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, []models.Phone{{PersonID: id, Number: "new-1", Label: "cell"}}, p.PhoneNumbers)

	require.NoError(t, repo.ReplacePhones(id, nil))
	p, err = repo.GetByID(id)
	require.NoError(t, err)
	assert.Empty(t, p.PhoneNumbers)

	err = repo.ReplacePhones(9999, []models.Phone{{Number: "x", Label: "y"}})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPersonRepository_Count(t *testing.T) {
	store, repo := setup(t)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	addPerson(t, store, "A")
	addPerson(t, store, "B")
	n, err = repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var _ PersonRepositoryInterface = repo
}
