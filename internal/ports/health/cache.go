package health

import (
	"context"
	"time"
)

// Cache recuerda qué servicios upstream fallaron recientemente.
// Mientras un servicio esté "down" el cliente no lo llama y va directo al fallback.
type Cache interface {
	IsDown(ctx context.Context, service string) (bool, error)
	MarkDown(ctx context.Context, service string, ttl time.Duration) error
	MarkUp(ctx context.Context, service string) error
}
