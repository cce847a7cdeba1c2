package snapshot

import (
	"sync"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/normalize"
)

// Snapshot is the uniformly-shaped in-memory view of one company's resources.
// All UI-facing consumers read it; only the Loader's own operations write it.
// Reads under RLock return copies so callers can iterate without holding the
// lock.
type Snapshot struct {
	mu sync.RWMutex

	branches     []normalize.Branch
	departments  []normalize.Department
	designations []normalize.Designation
	employees    []normalize.Employee
	payroll      []normalize.PayrollRecord
	deptCounts   []normalize.DepartmentCount
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

type Totals struct {
	BranchCount   int     `json:"branchCount"`
	EmployeeCount int     `json:"employeeCount"`
	TotalSalary   float64 `json:"totalSalary"`
}

// Totals derives the dashboard summary. Salary folding relies on the
// normalizer's zero-coercion, so a malformed salary field contributes 0.
func (s *Snapshot) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, e := range s.employees {
		total += e.Salary
	}

	return Totals{
		BranchCount:   len(s.branches),
		EmployeeCount: len(s.employees),
		TotalSalary:   total,
	}
}

func (s *Snapshot) Branches() []normalize.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]normalize.Branch, len(s.branches))
	copy(out, s.branches)
	return out
}

func (s *Snapshot) Departments() []normalize.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]normalize.Department, len(s.departments))
	copy(out, s.departments)
	return out
}

func (s *Snapshot) Designations() []normalize.Designation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]normalize.Designation, len(s.designations))
	copy(out, s.designations)
	return out
}

func (s *Snapshot) Employees() []normalize.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]normalize.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *Snapshot) Payroll() []normalize.PayrollRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]normalize.PayrollRecord, len(s.payroll))
	copy(out, s.payroll)
	return out
}

func (s *Snapshot) DepartmentCounts() []normalize.DepartmentCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]normalize.DepartmentCount, len(s.deptCounts))
	copy(out, s.deptCounts)
	return out
}

func (s *Snapshot) setBranches(list []normalize.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches = list
}

func (s *Snapshot) setDepartments(list []normalize.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = list
}

func (s *Snapshot) setDesignations(list []normalize.Designation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.designations = list
}

func (s *Snapshot) setEmployees(list []normalize.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = list
}

func (s *Snapshot) setPayroll(list []normalize.PayrollRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payroll = list
}

func (s *Snapshot) setDepartmentCounts(list []normalize.DepartmentCount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deptCounts = list
}

func (s *Snapshot) applyBranchAdd(b normalize.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches = AppendBranch(s.branches, b)
}

func (s *Snapshot) applyBranchRemove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches = RemoveBranch(s.branches, id)
}

func (s *Snapshot) applyDepartmentAdd(d normalize.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = AppendDepartment(s.departments, d)
}

func (s *Snapshot) applyDepartmentRemove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = RemoveDepartment(s.departments, id)
}
