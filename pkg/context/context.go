package context

import "context"

type ContextKey string

var (
	RequestIDKey   = ContextKey("X-Request-Id")
	MethodKey      = ContextKey("X-Method")
	RouteKey       = ContextKey("X-Route")
	RemoteIPKey    = ContextKey("X-Remote-Ip")
	UserNameKey    = ContextKey("X-User")
	AccessTokenKey = ContextKey("X-Access-Token")
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	value, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, MethodKey, method)
}

func GetMethod(ctx context.Context) string {
	value, ok := ctx.Value(MethodKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, RouteKey, route)
}

func GetRoute(ctx context.Context) string {
	value, ok := ctx.Value(RouteKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetRemoteIP(ctx context.Context, remoteIP string) context.Context {
	return context.WithValue(ctx, RemoteIPKey, remoteIP)
}

func GetRemoteIP(ctx context.Context) string {
	value, ok := ctx.Value(RemoteIPKey).(string)
	if !ok {
		return ""
	}
	return value
}

// SetUserName stores the display name of the user making the request.
// It is written to last_edited_by on every audited mutation.
func SetUserName(ctx context.Context, userName string) context.Context {
	return context.WithValue(ctx, UserNameKey, userName)
}

func GetUserName(ctx context.Context) string {
	value, ok := ctx.Value(UserNameKey).(string)
	if !ok {
		return ""
	}
	return value
}

// SetAccessToken stores the opaque bearer token, if any, for passthrough to
// downstream services. An empty token is tolerated everywhere.
func SetAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, AccessTokenKey, token)
}

func GetAccessToken(ctx context.Context) string {
	value, ok := ctx.Value(AccessTokenKey).(string)
	if !ok {
		return ""
	}
	return value
}
