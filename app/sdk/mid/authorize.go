package mid

import (
	"context"
	"net/http"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
)

// Authorize checks the caller's role against the policy for the resource and
// action bound to the route. Booking lifecycle verbs do not map cleanly onto
// HTTP methods so every route declares its action explicitly.
func Authorize(a *auth.Auth, res resource.Resource, act actions.Action) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims := GetClaims(ctx)

			if err := a.Authorize(ctx, claims, res, act); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
