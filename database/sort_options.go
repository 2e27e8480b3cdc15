package database

// PersonSortField names a person column the contact list can be ordered by.
type PersonSortField string

const (
	SortPersonID  PersonSortField = "person_id"
	SortFirstName PersonSortField = "first_name"
	SortLastName  PersonSortField = "last_name"
	SortBirthday  PersonSortField = "birthday"
	SortEmail     PersonSortField = "email"
)

var sortFieldHeadings = map[PersonSortField]string{
	SortPersonID:  "ID",
	SortFirstName: "First Name",
	SortLastName:  "Last Name",
	SortBirthday:  "Birthday",
	SortEmail:     "Email",
}

// SortableFields returns every valid sort field in column order.
func SortableFields() []PersonSortField {
	return []PersonSortField{SortPersonID, SortFirstName, SortLastName, SortBirthday, SortEmail}
}

// IsValid reports whether f is one of the sortable person columns.
// Only valid fields may be placed in ORDER BY.
func (f PersonSortField) IsValid() bool {
	_, ok := sortFieldHeadings[f]
	return ok
}

// Heading is the column title shown for f in the contact list, or "" if f is not valid.
func (f PersonSortField) Heading() string {
	return sortFieldHeadings[f]
}
