package payslip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salary"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/apperror"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/upstream"
)

type upstreamFetcher struct {
	api *upstream.Client
}

// NewUpstreamFetcher adapts the upstream client to the view's Fetcher.
func NewUpstreamFetcher(api *upstream.Client) Fetcher {
	return &upstreamFetcher{api: api}
}

func (f *upstreamFetcher) FetchSlip(ctx context.Context, companyID, employeeID, month string) (*salary.Slip, error) {
	path := fmt.Sprintf("/payslips/%s?month=%s", url.PathEscape(employeeID), url.QueryEscape(month))
	raw, err := f.api.GetJSON(ctx, path, companyID)
	if err != nil {
		// No slip generated yet is a normal state, not a failure.
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var slip salary.Slip
	if err := json.Unmarshal(raw, &slip); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeUpstreamError, "malformed payslip payload", 502)
	}
	slip.EmployeeID = employeeID
	slip.Month = month
	return &slip, nil
}

func (f *upstreamFetcher) GenerateSlip(ctx context.Context, companyID, employeeID, month string) (*salary.Slip, error) {
	path := fmt.Sprintf("/payslips/%s/generate", url.PathEscape(employeeID))
	raw, err := f.api.PostJSON(ctx, path, companyID, map[string]any{"month": month})
	if err != nil {
		return nil, err
	}

	var slip salary.Slip
	if err := json.Unmarshal(raw, &slip); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeUpstreamError, "malformed payslip payload", 502)
	}
	slip.EmployeeID = employeeID
	slip.Month = month
	return &slip, nil
}

func (f *upstreamFetcher) FetchConfig(ctx context.Context, companyID, employeeID string) (*salary.Config, error) {
	path := fmt.Sprintf("/salary-configurations/%s", url.PathEscape(employeeID))
	raw, err := f.api.GetJSON(ctx, path, companyID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var cfg salary.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeUpstreamError, "malformed salary configuration payload", 502)
	}
	cfg.EmployeeID = employeeID
	return &cfg, nil
}
