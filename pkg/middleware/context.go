package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	appctx "github.com/ecrin-rms/rmsbe/pkg/context"
)

const (
	// HeaderUserName identifies the user for audit attribution (last_edited_by)
	HeaderUserName = "X-User"
)

// Context populates the request context with the request id, routing details,
// the audit user and the opaque access token. A missing user or token is
// tolerated; downstream code treats them as empty.
func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			userName := req.Header.Get(HeaderUserName)

			token := req.Header.Get(echo.HeaderAuthorization)
			token = strings.TrimPrefix(token, "Bearer ")

			ctx := req.Context()
			ctx = appctx.SetRequestID(ctx, requestID)
			ctx = appctx.SetMethod(ctx, req.Method)
			ctx = appctx.SetRoute(ctx, req.URL.Path)
			ctx = appctx.SetRemoteIP(ctx, c.RealIP())
			ctx = appctx.SetUserName(ctx, userName)
			ctx = appctx.SetAccessToken(ctx, token)

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
