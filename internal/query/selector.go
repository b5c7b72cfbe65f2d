// Package query selects the SQL report submitted for a registration number.
package query

import (
	_ "embed"
	"fmt"
	"strconv"
)

var (
	// TopPaidPerDepartment ranks the highest paid employee of every department.
	//
	//go:embed sql/top_paid_per_department.sql
	TopPaidPerDepartment string

	// DepartmentRoster lists average age and employee names per department,
	// restricted to employees whose total salary exceeds 70000.
	//
	//go:embed sql/department_roster.sql
	DepartmentRoster string
)

// InvalidRegNoError is returned when the registration number does not end in two digits.
type InvalidRegNoError struct {
	RegNo string
	Cause error
}

func (e *InvalidRegNoError) Error() string {
	return fmt.Sprintf("invalid registration number %q: %v", e.RegNo, e.Cause)
}

func (e *InvalidRegNoError) Unwrap() error {
	return e.Cause
}

// Select returns TopPaidPerDepartment when the last two characters of regNo
// form an odd number and DepartmentRoster when they form an even one.
func Select(regNo string) (string, error) {
	if len(regNo) < 2 {
		return "", &InvalidRegNoError{RegNo: regNo, Cause: fmt.Errorf("need at least 2 characters, got %d", len(regNo))}
	}
	lastTwo, err := strconv.Atoi(regNo[len(regNo)-2:])
	if err != nil {
		return "", &InvalidRegNoError{RegNo: regNo, Cause: err}
	}
	if lastTwo%2 != 0 {
		return TopPaidPerDepartment, nil
	}
	return DepartmentRoster, nil
}
