package projections

import (
	"context"
	"strings"
	"time"

	"ticclub/internal/domain/registration"
)

// TableColumns is the number of columns in the admin table.
const TableColumns = 7

// RegistrationLister reads all registrations in insertion order.
type RegistrationLister interface {
	List(ctx context.Context) ([]registration.Registration, error)
}

// GetRegistrationTableDeps holds dependencies for the admin table projection.
type GetRegistrationTableDeps struct {
	Store    RegistrationLister
	Location *time.Location
}

// RegistrationRow is one display row of the admin table.
// Values are raw text; escaping belongs to the renderer.
type RegistrationRow struct {
	Index          int
	Name           string
	Email          string
	Phone          string
	Department     string
	Positions      string
	PositionsTitle string
	Submitted      string
}

// RegistrationTable is the admin table view model.
type RegistrationTable struct {
	Total   int
	Rows    []RegistrationRow
	Empty   bool
	Columns int
}

// QueryRegistrationTable builds the admin table from every stored registration.
// PRE: deps.Store is non-nil
// POST: Rows are in insertion order with a 1-based Index; Empty is set when there are none
func QueryRegistrationTable(ctx context.Context, deps GetRegistrationTableDeps) (RegistrationTable, error) {
	regs, err := deps.Store.List(ctx)
	if err != nil {
		return RegistrationTable{}, err
	}
	table := RegistrationTable{
		Total:   len(regs),
		Empty:   len(regs) == 0,
		Columns: TableColumns,
		Rows:    make([]RegistrationRow, 0, len(regs)),
	}
	for i, r := range regs {
		positions := strings.Join(r.Positions, registration.DisplaySeparator)
		table.Rows = append(table.Rows, RegistrationRow{
			Index:          i + 1,
			Name:           r.Name,
			Email:          r.Email,
			Phone:          r.Phone,
			Department:     r.Department,
			Positions:      positions,
			PositionsTitle: positions,
			Submitted:      registration.FormatTimestamp(r.Timestamp, deps.Location, registration.TableTimeLayout),
		})
	}
	return table, nil
}
