package dashboard

type CreateBranchRequest struct {
	Name       string `json:"name" binding:"required"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode int    `json:"postalCode"`
}

func (r CreateBranchRequest) payload() map[string]any {
	return map[string]any{
		"name":       r.Name,
		"street":     r.Street,
		"city":       r.City,
		"state":      r.State,
		"postalCode": r.PostalCode,
	}
}

type CreateDepartmentRequest struct {
	Name             string   `json:"name" binding:"required"`
	Responsibilities string   `json:"responsibilities"`
	Roles            []string `json:"roles"`
}

func (r CreateDepartmentRequest) payload() map[string]any {
	p := map[string]any{
		"name":             r.Name,
		"responsibilities": r.Responsibilities,
	}
	if len(r.Roles) > 0 {
		roles := make([]any, 0, len(r.Roles))
		for _, role := range r.Roles {
			roles = append(roles, role)
		}
		p["roles"] = roles
	}
	return p
}

type UpstreamReportRequest struct {
	Params map[string]any `json:"params"`
}

type reloadOutcomeResponse struct {
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
	Failed bool   `json:"failed"`
}
