package health

import "context"

// HealthPinger is implemented by adapters that can verify their backing
// connection directly.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
