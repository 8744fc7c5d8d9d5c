package user

// Column headers of the users table, in display order.
const (
	HeaderName  = "Name:"
	HeaderEmail = "Email:"
)

// Row is a single data row of the users table.
type Row struct {
	Key   int64    // Key identifies the row for display-list diffing
	Cells []string // Cells holds the name and email, in header order
}

// Table is the tabular projection of a user list.
type Table struct {
	Header []string
	Rows   []Row
}

// NewUserTable projects users into a table with one row per user.
// Input order is preserved; nothing is sorted, filtered or paginated.
func NewUserTable(users []User) Table {
	rows := make([]Row, len(users))
	for i, u := range users {
		rows[i] = Row{
			Key:   u.ID,
			Cells: []string{u.Name, u.Email},
		}
	}

	return Table{
		Header: []string{HeaderName, HeaderEmail},
		Rows:   rows,
	}
}

// RowCount returns the number of table rows including the header row.
func (t Table) RowCount() int {
	return len(t.Rows) + 1
}
