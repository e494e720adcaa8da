package requestdata

import (
	"context"
	"strings"
)

var requestDataKey = struct{}{}

// RequestData carries the authenticated caller identity for the lifetime of
// one request. CallerID is the email the surrounding platform issued the
// token for; it is compared against the enlistment owner on every operation.
type RequestData struct {
	TokenString string
	CallerID    string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// CallerID returns the authenticated caller or "" when the context carries none.
func CallerID(ctx context.Context) string {
	rd := GetRequestData(ctx)
	if rd == nil {
		return ""
	}
	return strings.TrimSpace(rd.CallerID)
}
