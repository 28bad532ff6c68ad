package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
	"github.com/veltrip/platform/business/types/role"
)

// authModel grants the admin role every permission via the matcher so no
// per-resource admin rules need to be maintained.
const authModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "ROLE:ADMIN" || (r.sub == p.sub && r.obj == p.obj && r.act == p.act)
`

type rule struct {
	role role.Role
	res  resource.Resource
	acts []actions.Action
}

// rules is the static role policy. Ownership and tenant boundaries are
// enforced by the business layer, not here.
var rules = []rule{
	{role.Company, resource.Company, []actions.Action{actions.Get, actions.Update}},

	{role.Company, resource.User, []actions.Action{actions.Create, actions.Get, actions.Update, actions.Delete}},

	{role.Company, resource.Vehicle, []actions.Action{actions.Create, actions.Get, actions.Update, actions.Delete}},

	{role.Company, resource.Driver, []actions.Action{actions.Create, actions.Get, actions.Update, actions.Delete}},
	{role.Driver, resource.Driver, []actions.Action{actions.Get, actions.Update}},
	{role.Customer, resource.Driver, []actions.Action{actions.Get}},

	{role.Company, resource.Booking, []actions.Action{actions.Create, actions.Get, actions.Update, actions.Confirm, actions.Assign, actions.Delete}},
	{role.Driver, resource.Booking, []actions.Action{actions.Get}},
	{role.Customer, resource.Booking, []actions.Action{actions.Create, actions.Get, actions.Cancel}},

	{role.Company, resource.Payment, []actions.Action{actions.Get, actions.Update}},
	{role.Driver, resource.Payment, []actions.Action{actions.Get}},
	{role.Customer, resource.Payment, []actions.Action{actions.Create, actions.Get}},
}

func newEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(authModel)
	if err != nil {
		return nil, fmt.Errorf("parsing model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("creating enforcer: %w", err)
	}

	for _, r := range rules {
		sub := "ROLE:" + r.role.String()
		for _, act := range r.acts {
			if _, err := enforcer.AddPolicy(sub, r.res.String(), act.String()); err != nil {
				return nil, fmt.Errorf("adding policy %s %s %s: %w", sub, r.res, act, err)
			}
		}
	}

	return enforcer, nil
}
