package payslip

import (
	"context"
	"errors"
	"sync"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salary"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/apperror"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Source string

const (
	SourcePreview   Source = "preview"
	SourceGenerated Source = "generated"
)

// Entry is what the payslip panel renders for one employee. Source tells the
// UI whether the figures came from a generated slip or are a pre-generation
// preview (which excludes tax and attendance deductions by definition).
type Entry struct {
	EmployeeID string              `json:"employeeId"`
	Month      string              `json:"month"`
	Summary    salary.SlipSummary  `json:"summary"`
	Attendance *salary.Attendance  `json:"attendance,omitempty"`
	Source     Source              `json:"source"`
}

// Fetcher is the upstream payslip surface. FetchSlip answers (nil, nil) when
// no slip has been generated for the month yet.
type Fetcher interface {
	FetchSlip(ctx context.Context, companyID, employeeID, month string) (*salary.Slip, error)
	GenerateSlip(ctx context.Context, companyID, employeeID, month string) (*salary.Slip, error)
	FetchConfig(ctx context.Context, companyID, employeeID string) (*salary.Config, error)
}

// View is the session-local payslip panel state: collapsed/expanded per
// employee plus a slip cache keyed by employee identity. A slip is scoped to
// (employee, month), so changing the month drops every cached entry.
type View struct {
	mu       sync.Mutex
	month    string
	expanded map[string]bool
	cache    map[string]Entry

	sf      singleflight.Group
	fetcher Fetcher
	logger  *zap.Logger
}

func NewView(fetcher Fetcher, month string, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{
		month:    month,
		expanded: make(map[string]bool),
		cache:    make(map[string]Entry),
		fetcher:  fetcher,
		logger:   logger.Named("payslip.view"),
	}
}

func (v *View) Month() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.month
}

// SetMonth switches the viewed month. Cached slips never carry across a
// month boundary; expansion state resets with them.
func (v *View) SetMonth(month string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if month == "" || month == v.month {
		return
	}
	v.month = month
	v.expanded = make(map[string]bool)
	v.cache = make(map[string]Entry)
}

func (v *View) Collapse(employeeID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.expanded, employeeID)
}

func (v *View) IsExpanded(employeeID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expanded[employeeID]
}

// Expand transitions an employee's panel to expanded. The first expansion
// with no cached slip issues a read-only preview fetch; concurrent expansions
// of the same employee share one flight. Expand is a read path: it logs
// failures and falls back to an empty preview instead of erroring.
func (v *View) Expand(ctx context.Context, companyID, employeeID string) Entry {
	v.mu.Lock()
	v.expanded[employeeID] = true
	month := v.month
	if entry, ok := v.cache[employeeID]; ok {
		v.mu.Unlock()
		return entry
	}
	v.mu.Unlock()

	key := employeeID + ":" + month
	result, _, _ := v.sf.Do(key, func() (any, error) {
		return v.loadEntry(ctx, companyID, employeeID, month), nil
	})
	entry := result.(Entry)

	v.mu.Lock()
	// A month switch while the fetch was in flight makes the result stale;
	// return it but do not cache it under the new month.
	if v.month == month {
		v.cache[employeeID] = entry
	}
	v.mu.Unlock()

	return entry
}

func (v *View) loadEntry(ctx context.Context, companyID, employeeID, month string) Entry {
	slip, err := v.fetcher.FetchSlip(ctx, companyID, employeeID, month)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		v.logger.Warn("slip fetch failed, falling back to preview",
			zap.String("employee_id", employeeID),
			zap.String("month", month),
			zap.Error(err),
		)
	}
	if slip != nil {
		return Entry{
			EmployeeID: employeeID,
			Month:      month,
			Summary:    salary.Summarize(slip),
			Attendance: slip.Attendance,
			Source:     SourceGenerated,
		}
	}

	cfg, err := v.fetcher.FetchConfig(ctx, companyID, employeeID)
	if err != nil {
		v.logger.Warn("salary configuration fetch failed, preview resolves empty",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		cfg = nil
	}

	return Entry{
		EmployeeID: employeeID,
		Month:      month,
		Summary:    salary.PreviewSummary(cfg),
		Source:     SourcePreview,
	}
}

// Generate asks upstream to compute the slip and overwrites any cached entry
// unconditionally, preview or generated alike. Generation is a write path:
// failures propagate to the caller and the cache stays as it was.
func (v *View) Generate(ctx context.Context, companyID, employeeID string) (Entry, error) {
	v.mu.Lock()
	month := v.month
	v.mu.Unlock()

	slip, err := v.fetcher.GenerateSlip(ctx, companyID, employeeID, month)
	if err != nil {
		return Entry{}, err
	}
	if slip == nil {
		return Entry{}, apperror.ErrUpstreamUnavailable
	}

	entry := Entry{
		EmployeeID: employeeID,
		Month:      month,
		Summary:    salary.Summarize(slip),
		Attendance: slip.Attendance,
		Source:     SourceGenerated,
	}

	v.mu.Lock()
	if v.month == month {
		v.cache[employeeID] = entry
		v.expanded[employeeID] = true
	}
	v.mu.Unlock()

	return entry, nil
}

// Cached returns the cached entry for an employee, if any.
func (v *View) Cached(employeeID string) (Entry, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	entry, ok := v.cache[employeeID]
	return entry, ok
}
