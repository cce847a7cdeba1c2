package snapshot

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/normalize"

	"go.uber.org/zap"
)

// Upstream resource paths.
const (
	branchesPath     = "/branches"
	departmentsPath  = "/departments"
	designationsPath = "/designations"
	employeesPath    = "/employees"
	payrollPath      = "/payroll"
	deptCountsPath   = "/departments/employee-count"
)

type Resource string

const (
	ResourceBranches     Resource = "branches"
	ResourceDepartments  Resource = "departments"
	ResourceDesignations Resource = "designations"
	ResourceEmployees    Resource = "employees"
	ResourcePayroll      Resource = "payroll"
	ResourceDeptCounts   Resource = "department_counts"
)

// Outcome is the per-resource result of a load. A soft failure keeps Err for
// logging but the resource still resolved to an empty collection; callers
// never see the error propagate past the join.
type Outcome struct {
	Count int
	Err   error
}

func (o Outcome) Failed() bool { return o.Err != nil }

// APIClient is the slice of the upstream client the loader needs.
type APIClient interface {
	FetchList(ctx context.Context, path, companyID string) ([]json.RawMessage, error)
	PostJSON(ctx context.Context, path, companyID string, payload any) (json.RawMessage, error)
	Delete(ctx context.Context, path, companyID string) error
}

// Loader owns the snapshot for the current company context. Loads fail soft:
// a broken resource resolves empty and never blocks its siblings. Mutations
// are the opposite: they propagate failures and only touch the snapshot after
// upstream confirms.
//
// Reloads are not fenced: a reload racing a company switch lets the last
// settling response win, matching the dashboard's long-standing behavior.
type Loader struct {
	api    APIClient
	snap   *Snapshot
	logger *zap.Logger
}

func NewLoader(api APIClient, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		api:    api,
		snap:   NewSnapshot(),
		logger: logger.Named("snapshot.loader"),
	}
}

func (l *Loader) Snapshot() *Snapshot {
	return l.snap
}

// ReloadAll fires every resource load concurrently and settles when all of
// them have, success or not. Total latency is bounded by the slowest single
// resource instead of the sum.
func (l *Loader) ReloadAll(ctx context.Context, companyID string) map[Resource]Outcome {
	loads := map[Resource]func(context.Context, string) Outcome{
		ResourceBranches:     l.LoadBranches,
		ResourceDepartments:  l.LoadDepartments,
		ResourceDesignations: l.LoadDesignations,
		ResourceEmployees:    l.LoadEmployees,
		ResourcePayroll:      l.LoadPayroll,
		ResourceDeptCounts:   l.LoadDepartmentCounts,
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		outcomes = make(map[Resource]Outcome, len(loads))
	)

	for res, load := range loads {
		wg.Add(1)
		go func(res Resource, load func(context.Context, string) Outcome) {
			defer wg.Done()
			out := load(ctx, companyID)
			mu.Lock()
			outcomes[res] = out
			mu.Unlock()
		}(res, load)
	}

	wg.Wait()
	return outcomes
}

func (l *Loader) LoadBranches(ctx context.Context, companyID string) Outcome {
	items, out := l.fetch(ctx, ResourceBranches, branchesPath, companyID)
	list := make([]normalize.Branch, 0, len(items))
	for _, raw := range items {
		if obj, ok := normalize.DecodeObject(raw); ok {
			list = append(list, normalize.BranchFromRaw(obj))
		}
	}
	l.snap.setBranches(list)
	out.Count = len(list)
	return out
}

func (l *Loader) LoadDepartments(ctx context.Context, companyID string) Outcome {
	items, out := l.fetch(ctx, ResourceDepartments, departmentsPath, companyID)
	list := make([]normalize.Department, 0, len(items))
	for _, raw := range items {
		if obj, ok := normalize.DecodeObject(raw); ok {
			list = append(list, normalize.DepartmentFromRaw(obj))
		}
	}
	l.snap.setDepartments(list)
	out.Count = len(list)
	return out
}

func (l *Loader) LoadDesignations(ctx context.Context, companyID string) Outcome {
	items, out := l.fetch(ctx, ResourceDesignations, designationsPath, companyID)
	list := make([]normalize.Designation, 0, len(items))
	for _, raw := range items {
		if obj, ok := normalize.DecodeObject(raw); ok {
			list = append(list, normalize.DesignationFromRaw(obj))
		}
	}
	l.snap.setDesignations(list)
	out.Count = len(list)
	return out
}

func (l *Loader) LoadEmployees(ctx context.Context, companyID string) Outcome {
	items, out := l.fetch(ctx, ResourceEmployees, employeesPath, companyID)
	list := make([]normalize.Employee, 0, len(items))
	for _, raw := range items {
		if obj, ok := normalize.DecodeObject(raw); ok {
			list = append(list, normalize.EmployeeFromRaw(obj))
		}
	}
	l.snap.setEmployees(list)
	out.Count = len(list)
	return out
}

func (l *Loader) LoadPayroll(ctx context.Context, companyID string) Outcome {
	items, out := l.fetch(ctx, ResourcePayroll, payrollPath, companyID)
	list := make([]normalize.PayrollRecord, 0, len(items))
	for _, raw := range items {
		if obj, ok := normalize.DecodeObject(raw); ok {
			list = append(list, normalize.PayrollRecordFromRaw(obj))
		}
	}
	l.snap.setPayroll(list)
	out.Count = len(list)
	return out
}

func (l *Loader) LoadDepartmentCounts(ctx context.Context, companyID string) Outcome {
	items, out := l.fetch(ctx, ResourceDeptCounts, deptCountsPath, companyID)
	list := make([]normalize.DepartmentCount, 0, len(items))
	for _, raw := range items {
		obj, ok := normalize.DecodeObject(raw)
		if !ok {
			continue
		}
		if dc, ok := normalize.DepartmentCountFromRaw(obj); ok {
			list = append(list, dc)
		}
	}
	l.snap.setDepartmentCounts(list)
	out.Count = len(list)
	return out
}

// fetch applies the shared load policy: a missing company identity is not an
// error, just nothing to load yet; a failed call logs and resolves empty.
func (l *Loader) fetch(ctx context.Context, res Resource, path, companyID string) ([]json.RawMessage, Outcome) {
	if companyID == "" {
		return nil, Outcome{}
	}

	items, err := l.api.FetchList(ctx, path, companyID)
	if err != nil {
		l.logger.Warn("resource load failed, resolving empty",
			zap.String("resource", string(res)),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return nil, Outcome{Err: err}
	}
	return items, Outcome{}
}

// AddBranch issues the upstream create and, only on success, appends the
// created branch to the snapshot. On failure the snapshot is untouched and
// the error goes back to the caller.
func (l *Loader) AddBranch(ctx context.Context, companyID string, payload map[string]any) (normalize.Branch, error) {
	raw, err := l.api.PostJSON(ctx, branchesPath, companyID, payload)
	if err != nil {
		return normalize.Branch{}, err
	}

	obj, ok := normalize.DecodeObject(raw)
	if !ok {
		// Upstream confirmed the create but returned nothing usable; fall
		// back to the submitted payload so the snapshot still reflects it.
		obj = payload
	}

	b := normalize.BranchFromRaw(obj)
	l.snap.applyBranchAdd(b)
	return b, nil
}

func (l *Loader) DeleteBranch(ctx context.Context, companyID, id string) error {
	if err := l.api.Delete(ctx, branchesPath+"/"+id, companyID); err != nil {
		return err
	}
	l.snap.applyBranchRemove(id)
	return nil
}

func (l *Loader) AddDepartment(ctx context.Context, companyID string, payload map[string]any) (normalize.Department, error) {
	raw, err := l.api.PostJSON(ctx, departmentsPath, companyID, payload)
	if err != nil {
		return normalize.Department{}, err
	}

	obj, ok := normalize.DecodeObject(raw)
	if !ok {
		obj = payload
	}

	d := normalize.DepartmentFromRaw(obj)
	l.snap.applyDepartmentAdd(d)
	return d, nil
}

func (l *Loader) DeleteDepartment(ctx context.Context, companyID, id string) error {
	if err := l.api.Delete(ctx, departmentsPath+"/"+id, companyID); err != nil {
		return err
	}
	l.snap.applyDepartmentRemove(id)
	return nil
}
