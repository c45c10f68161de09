package trace

import "context"

type forceKey struct{}

// Force marks ctx so that spans started under it carry the force attribute
// and bypass ratio sampling.
func Force(ctx context.Context) context.Context {
	return context.WithValue(ctx, forceKey{}, true)
}

func IsForced(ctx context.Context) bool {
	forced, _ := ctx.Value(forceKey{}).(bool)
	return forced
}
