package pulp

import "context"

type dryRunKey struct{}

// WithDryRun marks ctx so clients refuse mutating operations.
// Passing false returns ctx unchanged.
func WithDryRun(ctx context.Context, dryRun bool) context.Context {
	if !dryRun {
		return ctx
	}
	return context.WithValue(ctx, dryRunKey{}, true)
}

// IsDryRun reports whether ctx was marked with WithDryRun.
func IsDryRun(ctx context.Context) bool {
	v, _ := ctx.Value(dryRunKey{}).(bool)
	return v
}

// CheckDryRun returns an error wrapping ErrDryRun if op must not run under ctx.
func CheckDryRun(ctx context.Context, op Operation) error {
	if IsDryRun(ctx) && !op.Safe() {
		return &Error{Op: op.ID, Kind: ErrDryRun}
	}
	return nil
}
