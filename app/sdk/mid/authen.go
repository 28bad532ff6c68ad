package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/sdk/web"
)

// Authenticate validates the JWT in the Authorization header and stores the
// caller's identity in the context for downstream handlers.
func Authenticate(a *auth.Auth) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			authStr := r.Header.Get("authorization")
			if authStr == "" {
				return errs.New(errs.Unauthenticated, errors.New("missing authorization header"))
			}

			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return errs.New(errs.Unauthenticated, errors.New("expected authorization header format: Bearer <token>"))
			}

			claims, err := a.Authenticate(ctx, authStr)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return errs.New(errs.Unauthenticated, fmt.Errorf("invalid user id: %w", err))
			}

			// Platform admin tokens carry no company id.
			companyID := uuid.Nil
			if claims.CompanyID != "" {
				companyID, err = uuid.Parse(claims.CompanyID)
				if err != nil {
					return errs.New(errs.Unauthenticated, fmt.Errorf("invalid company id: %w", err))
				}
			}

			ctx = setUserID(ctx, userID)
			ctx = setCompanyID(ctx, companyID)
			ctx = setClaims(ctx, claims)

			return next(ctx, r)
		}

		return h
	}

	return m
}
