package mid

import (
	"context"
	"net/http"

	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/app/sdk/metrics"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/foundation/logger"
)

// Errors handles errors coming out of the call chain. The error is logged
// with its origin and a sanitized version flows back to the client.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			metrics.AddErrors(ctx)

			switch v := err.(type) {
			case *errs.Error:
				log.Error(ctx, "handled error during request",
					"err", err, "source_err_file", v.FileName, "source_err_func", v.FuncName)

				if v.Code == errs.InternalOnlyLog {
					v = errs.Errorf(errs.Internal, "internal server error")
				}

				return v

			case errs.FieldErrors:
				log.Error(ctx, "handled field errors during request", "err", err)
				return v

			default:
				log.Error(ctx, "unhandled error during request", "err", err)
				return errs.Errorf(errs.Internal, "internal server error")
			}
		}

		return h
	}

	return m
}
