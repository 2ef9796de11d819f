package contextx

import (
	"context"
	"fmt"
)

type ClientIP string

type contextKeyClientIP struct{}

func (ip ClientIP) String() string {
	return string(ip)
}

func WithClientIP(ctx context.Context, ip ClientIP) context.Context {
	return context.WithValue(ctx, contextKeyClientIP{}, ip)
}

func ClientIPFromContext(ctx context.Context) (ClientIP, error) {
	ip, ok := ctx.Value(contextKeyClientIP{}).(ClientIP)
	if !ok {
		return "", fmt.Errorf("client ip: %w", ErrNoValue)
	}

	return ip, nil
}
