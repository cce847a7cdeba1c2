package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical in-memory shapes. Every struct keeps the raw server object so
// consumers that need an original field name are not blocked by the rename.

const (
	DefaultBranchName      = "Unnamed Branch"
	DefaultDepartmentName  = "Unnamed Department"
	DefaultDesignationName = "Unnamed Designation"
	DefaultEmployeeRole    = "Employee"
)

// DesignationLevels is the fixed level enumeration.
var DesignationLevels = []string{"Junior", "Mid", "Senior", "Manager", "Director"}

var (
	branchNameKeys   = []string{"name", "BranchName", "branchName", "Name"}
	branchStreetKeys = []string{"street", "Street", "address", "Address"}
	branchCityKeys   = []string{"city", "City"}
	branchStateKeys  = []string{"state", "State"}
	branchPostalKeys = []string{"postalCode", "PostalCode", "pincode", "Pincode", "zip"}

	departmentNameKeys = []string{"name", "DepartmentName", "departmentName", "Name"}
	departmentDescKeys = []string{"responsibilities", "Responsibilities", "description", "Description"}

	designationNameKeys  = []string{"name", "DesignationName", "designationName", "Name"}
	designationLevelKeys = []string{"level", "Level", "designationLevel"}
	designationDescKeys  = []string{"description", "Description"}

	employeeNameKeys       = []string{"name", "EmployeeName", "fullName", "FullName", "Name"}
	employeeEmailKeys      = []string{"email", "Email"}
	employeeRoleKeys       = []string{"role", "Role"}
	employeeCodeKeys       = []string{"employeeCode", "EmployeeCode", "code", "Code"}
	employeeDeptKeys       = []string{"departmentId", "DepartmentId", "department", "Department"}
	employeeDesigKeys      = []string{"designationId", "DesignationId", "designation", "Designation"}
	employeeBranchKeys     = []string{"branchId", "BranchId", "branch", "Branch"}
	employeeJoinDateKeys   = []string{"joinDate", "JoinDate", "joiningDate", "dateOfJoining"}
	employeeSalaryKeys     = []string{"salary", "Salary", "totalSalary", "TotalSalary", "netSalary", "NetSalary"}
	payrollEmployeeKeys    = []string{"employeeId", "EmployeeId", "employee"}
	payrollMonthKeys       = []string{"month", "Month", "payrollMonth", "PayrollMonth"}
	payrollNetKeys         = []string{"netSalary", "NetSalary", "net"}
	payrollGrossKeys       = []string{"grossSalary", "GrossSalary", "gross"}
	payrollDeductionKeys   = []string{"totalDeductions", "TotalDeductions", "deductions"}
	deptCountDepartment    = []string{"departmentId", "DepartmentId", "_id", "department"}
	deptCountValueKeys     = []string{"count", "Count", "employees", "employeeCount"}
	levelTitler            = cases.Title(language.English)
)

type Branch struct {
	ID         string
	Name       string
	Street     string
	City       string
	State      string
	PostalCode int
	Raw        map[string]any
}

func BranchFromRaw(obj map[string]any) Branch {
	return Branch{
		ID:         ID(obj),
		Name:       StringField(obj, branchNameKeys, DefaultBranchName),
		Street:     StringField(obj, branchStreetKeys, ""),
		City:       StringField(obj, branchCityKeys, ""),
		State:      StringField(obj, branchStateKeys, ""),
		PostalCode: clampNonNegative(IntField(obj, branchPostalKeys)),
		Raw:        obj,
	}
}

type Department struct {
	ID               string
	Name             string
	Responsibilities string
	Roles            []string
	Raw              map[string]any
}

func DepartmentFromRaw(obj map[string]any) Department {
	return Department{
		ID:               ID(obj),
		Name:             StringField(obj, departmentNameKeys, DefaultDepartmentName),
		Responsibilities: StringField(obj, departmentDescKeys, ""),
		Roles:            stringSlice(obj["roles"]),
		Raw:              obj,
	}
}

type Designation struct {
	ID          string
	Name        string
	Level       string
	Description string
	Raw         map[string]any
}

func DesignationFromRaw(obj map[string]any) Designation {
	return Designation{
		ID:          ID(obj),
		Name:        StringField(obj, designationNameKeys, DefaultDesignationName),
		Level:       canonicalLevel(StringField(obj, designationLevelKeys, "")),
		Description: StringField(obj, designationDescKeys, ""),
		Raw:         obj,
	}
}

// canonicalLevel title-cases the level and keeps it only when it is part of
// the fixed enumeration; anything else passes through untouched so the raw
// value stays visible.
func canonicalLevel(level string) string {
	if level == "" {
		return ""
	}
	titled := levelTitler.String(strings.ToLower(level))
	for _, known := range DesignationLevels {
		if titled == known {
			return known
		}
	}
	return level
}

type Employee struct {
	ID            string
	Name          string
	Email         string
	Role          string
	Code          string
	DepartmentID  string
	DesignationID string
	BranchID      string
	JoinDate      string
	Salary        float64
	Raw           map[string]any
}

func EmployeeFromRaw(obj map[string]any) Employee {
	return Employee{
		ID:            ID(obj),
		Name:          StringField(obj, employeeNameKeys, ""),
		Email:         StringField(obj, employeeEmailKeys, ""),
		Role:          StringField(obj, employeeRoleKeys, DefaultEmployeeRole),
		Code:          StringField(obj, employeeCodeKeys, ""),
		DepartmentID:  refID(obj, employeeDeptKeys),
		DesignationID: refID(obj, employeeDesigKeys),
		BranchID:      refID(obj, employeeBranchKeys),
		JoinDate:      StringField(obj, employeeJoinDateKeys, ""),
		Salary:        NumberField(obj, employeeSalaryKeys),
		Raw:           obj,
	}
}

type PayrollRecord struct {
	ID              string
	EmployeeID      string
	Month           string
	GrossSalary     float64
	TotalDeductions float64
	NetSalary       float64
	Raw             map[string]any
}

func PayrollRecordFromRaw(obj map[string]any) PayrollRecord {
	return PayrollRecord{
		ID:              ID(obj),
		EmployeeID:      refID(obj, payrollEmployeeKeys),
		Month:           StringField(obj, payrollMonthKeys, ""),
		GrossSalary:     NumberField(obj, payrollGrossKeys),
		TotalDeductions: NumberField(obj, payrollDeductionKeys),
		NetSalary:       NumberField(obj, payrollNetKeys),
		Raw:             obj,
	}
}

// DepartmentCount is the employees-per-department projection element.
// Entries with a null department reference are dropped by the caller.
type DepartmentCount struct {
	DepartmentID string
	Count        int
}

func DepartmentCountFromRaw(obj map[string]any) (DepartmentCount, bool) {
	deptID := refID(obj, deptCountDepartment)
	if deptID == "" {
		return DepartmentCount{}, false
	}
	return DepartmentCount{
		DepartmentID: deptID,
		Count:        IntField(obj, deptCountValueKeys),
	}, true
}

// refID resolves a reference field that may be a plain id string or a
// populated sub-document.
func refID(obj map[string]any, keys []string) string {
	for _, k := range keys {
		v, present := obj[k]
		if !present || v == nil {
			continue
		}
		switch ref := v.(type) {
		case string:
			if ref != "" {
				return ref
			}
		case map[string]any:
			if id := ID(ref); id != "" {
				return id
			}
		}
	}
	return ""
}

func stringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
