package rbac

import (
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// The dashboard's role set is a fixed enumeration, so the policy table is
// static and compiled in rather than loaded per company.

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var rolePolicies = [][]string{
	{"admin", "snapshot", "read"},
	{"admin", "snapshot", "write"},
	{"admin", "payslip", "read"},
	{"admin", "payslip", "generate"},
	{"admin", "salary_request", "read"},
	{"admin", "salary_request", "decide"},
	{"admin", "report", "read"},
	{"admin", "notification", "read"},

	{"hr", "snapshot", "read"},
	{"hr", "payslip", "read"},
	{"hr", "payslip", "generate"},
	{"hr", "salary_request", "read"},
	{"hr", "salary_request", "create"},
	{"hr", "report", "read"},
	{"hr", "notification", "read"},

	{"ca", "snapshot", "read"},
	{"ca", "payslip", "read"},
	{"ca", "report", "read"},

	{"employee", "payslip", "read"},
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(strings.ToLower(role), resource, action)
}
