package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/camden-git/contactsbackend/models"
)

var ErrInvalidSortField = errors.New("invalid sort field")

// person columns in insert order, excluding the store-assigned person_id
var personColumns = []string{
	"first_name", "last_name", "birthday", "email",
	"address_line1", "address_line2", "city", "prov", "country", "postcode",
}

// personPhoneRow is one row of the person LEFT JOIN phone listing query.
type personPhoneRow struct {
	models.Person
	PhoneNumber sql.NullString `db:"phone_number"`
	PhoneLabel  sql.NullString `db:"phone_label"`
}

// AddPerson inserts p and all of p.PhoneNumbers in a single transaction and
// returns the new person_id. On any failure nothing is written, the error is
// logged and returned.
func (s *Store) AddPerson(ctx context.Context, p models.Person) (int64, error) {
	personID, err := s.addPerson(ctx, p)
	if err != nil {
		s.log.Error().Err(err).
			Str("first_name", p.FirstName).
			Str("last_name", p.LastName).
			Int("phone_numbers", len(p.PhoneNumbers)).
			Msg("failed to add person")
		return 0, err
	}
	s.log.Debug().Int64("person_id", personID).Int("phone_numbers", len(p.PhoneNumbers)).Msg("added person")
	return personID, nil
}

func (s *Store) addPerson(ctx context.Context, p models.Person) (int64, error) {
	db, err := s.Connect(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var personID int64
	err = withTx(ctx, db, func(tx *sqlx.Tx) error {
		queryBuilder := psql.Insert("person").
			Columns(personColumns...).
			Values(p.FirstName, p.LastName, p.Birthday, p.Email,
				p.AddressLine1, p.AddressLine2, p.City, p.Prov, p.Country, p.Postcode)
		sqlStr, args, err := queryBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build SQL for AddPerson: %w", err)
		}
		result, err := tx.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("failed to insert person %s %s: %w", p.FirstName, p.LastName, err)
		}
		personID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get new person_id: %w", err)
		}

		if len(p.PhoneNumbers) == 0 {
			return nil
		}

		phoneBuilder := psql.Insert("phone").Columns("person_id", "number", "label")
		for _, phone := range p.PhoneNumbers {
			phoneBuilder = phoneBuilder.Values(personID, phone.Number, phone.Label)
		}
		sqlStr, args, err = phoneBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build SQL for phone numbers: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("failed to insert %d phone numbers for person %d: %w", len(p.PhoneNumbers), personID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return personID, nil
}

// DeletePerson removes the person with the given id and returns the number of
// rows deleted. Phones go with it (ON DELETE CASCADE). A missing id deletes
// nothing and is not an error.
func (s *Store) DeletePerson(ctx context.Context, personID int64) (int64, error) {
	queryBuilder := psql.Delete("person").Where(sq.Eq{"person_id": personID})
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for DeletePerson: %w", err)
	}

	db, err := s.Connect(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	result, err := db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		s.log.Error().Err(err).Int64("person_id", personID).Msg("failed to delete person")
		return 0, fmt.Errorf("failed to execute DeletePerson for ID %d: %w", personID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for DeletePerson ID %d: %w", personID, err)
	}
	return rowsAffected, nil
}

// GetPeopleList returns every person with their phone numbers, ordered by
// orderBy. Each person appears once, in the order it is first seen in the
// sorted result. orderBy is checked before any SQL is built since it is
// written into the query text.
func (s *Store) GetPeopleList(ctx context.Context, orderBy PersonSortField) ([]models.Person, error) {
	if !orderBy.IsValid() {
		return nil, fmt.Errorf("%w: %q (must be one of %v)", ErrInvalidSortField, string(orderBy), SortableFields())
	}

	queryBuilder := psql.Select(
		"p.person_id AS person_id",
		"p.first_name AS first_name",
		"p.last_name AS last_name",
		"p.birthday AS birthday",
		"p.email AS email",
		"p.address_line1 AS address_line1",
		"p.address_line2 AS address_line2",
		"p.city AS city",
		"p.prov AS prov",
		"p.country AS country",
		"p.postcode AS postcode",
		"ph.number AS phone_number",
		"ph.label AS phone_label",
	).
		From("person p").
		LeftJoin("phone ph ON p.person_id = ph.person_id").
		OrderBy("p."+string(orderBy), "p.person_id", "ph.rowid")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetPeopleList: %w", err)
	}

	db, err := s.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rows []personPhoneRow
	if err := db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to execute GetPeopleList query: %w", err)
	}
	return groupPhones(rows), nil
}

// groupPhones folds the flat join rows into one Person per person_id,
// keeping first-seen order. Rows with a NULL phone number add no phone.
func groupPhones(rows []personPhoneRow) []models.Person {
	people := []models.Person{}
	index := make(map[int64]int)
	for _, r := range rows {
		i, ok := index[r.PersonID]
		if !ok {
			person := r.Person
			person.PhoneNumbers = []models.Phone{}
			people = append(people, person)
			i = len(people) - 1
			index[r.PersonID] = i
		}
		if r.PhoneNumber.Valid {
			people[i].PhoneNumbers = append(people[i].PhoneNumbers, models.Phone{
				PersonID: r.PersonID,
				Number:   r.PhoneNumber.String,
				Label:    r.PhoneLabel.String,
			})
		}
	}
	return people
}

// GetPersonIDs returns every person_id in the store's default order.
func (s *Store) GetPersonIDs(ctx context.Context) ([]int64, error) {
	sqlStr, args, err := psql.Select("person_id").From("person").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetPersonIDs: %w", err)
	}

	db, err := s.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ids := []int64{}
	if err := db.SelectContext(ctx, &ids, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to execute GetPersonIDs query: %w", err)
	}
	return ids, nil
}
