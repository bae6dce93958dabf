package ping

import (
	"context"
	"mcstatus/internal/models"
	"time"
)

// DefaultTimeout bounds the whole live probe phase. It keeps a resolve call
// inside the execution budget a widget host gives its refresh process; an
// OS level connect timeout would run far longer.
const DefaultTimeout = 5 * time.Second

// ProbeInterface performs one network round trip for one protocol.
type ProbeInterface interface {
	Probe(ctx context.Context, address string, timeout time.Duration) (*models.ServerInfo, error)
}

// ProbeFunc adapts a function to ProbeInterface.
type ProbeFunc func(ctx context.Context, address string, timeout time.Duration) (*models.ServerInfo, error)

func (f ProbeFunc) Probe(ctx context.Context, address string, timeout time.Duration) (*models.ServerInfo, error) {
	return f(ctx, address, timeout)
}

// JavaProbeInterface and BedrockProbeInterface name the two collaborator
// slots so the injector can tell them apart.
type JavaProbeInterface interface {
	ProbeInterface
}

type BedrockProbeInterface interface {
	ProbeInterface
}
