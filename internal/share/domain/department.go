package domain

import "errors"

// Department is one of the fixed organisational units. Every account belongs
// to exactly one and every file inherits its uploader's.
type Department string

const (
	DepartmentHR          Department = "HR"
	DepartmentIT          Department = "IT"
	DepartmentFinance     Department = "Finance"
	DepartmentMarketing   Department = "Marketing"
	DepartmentSales       Department = "Sales"
	DepartmentOperations  Department = "Operations"
	DepartmentLegal       Department = "Legal"
	DepartmentEngineering Department = "Engineering"
)

var ErrUnknownDepartment = errors.New("unknown department")

// departments is in display order.
var departments = []struct {
	dept Department
	code string
}{
	{DepartmentHR, "HR"},
	{DepartmentIT, "IT"},
	{DepartmentFinance, "FIN"},
	{DepartmentMarketing, "MKT"},
	{DepartmentSales, "SAL"},
	{DepartmentOperations, "OPS"},
	{DepartmentLegal, "LEG"},
	{DepartmentEngineering, "ENG"},
}

// Departments lists every department in display order.
func Departments() []Department {
	out := make([]Department, len(departments))
	for i, d := range departments {
		out[i] = d.dept
	}
	return out
}

// ParseDepartment accepts a canonical department name, exactly.
func ParseDepartment(s string) (Department, error) {
	for _, d := range departments {
		if string(d.dept) == s {
			return d.dept, nil
		}
	}
	return "", ErrUnknownDepartment
}

// DepartmentFromCode maps an identifier prefix such as "FIN" back to its
// department.
func DepartmentFromCode(code string) (Department, error) {
	for _, d := range departments {
		if d.code == code {
			return d.dept, nil
		}
	}
	return "", ErrUnknownDepartment
}

// Valid reports whether d is one of the known departments.
func (d Department) Valid() bool {
	_, err := ParseDepartment(string(d))
	return err == nil
}

// Code returns the identifier prefix for d, or "" when d is unknown.
func (d Department) Code() string {
	for _, e := range departments {
		if e.dept == d {
			return e.code
		}
	}
	return ""
}

func (d Department) String() string { return string(d) }
