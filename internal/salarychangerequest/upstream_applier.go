package salarychangerequest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/upstream"
)

type upstreamApplier struct {
	client *upstream.Client
}

func NewUpstreamApplier(client *upstream.Client) Applier {
	return &upstreamApplier{client: client}
}

func (a *upstreamApplier) ApplySalaryChange(ctx context.Context, companyID, employeeID string, items json.RawMessage) error {
	path := fmt.Sprintf("/salary-configurations/%s", employeeID)
	payload := map[string]json.RawMessage{
		"SalaryHeads": items,
	}

	_, err := a.client.PostJSON(ctx, path, companyID, payload)
	return err
}
