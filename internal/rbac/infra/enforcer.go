package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// RouteModel grants a role access to a resource. Policies are
// "p, <role>, <resource>" and are registered by the routes themselves.
const RouteModel = `[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(RouteModel)
	if err != nil {
		return nil, err
	}
	return casbin.NewSyncedEnforcer(m)
}
