package ping

import (
	"context"
	"errors"
	"fmt"
	"mcstatus/internal/models"
	"mcstatus/internal/providers"
	"time"
)

// raceGrace is how long past the probe timeout an auto race keeps waiting
// for stragglers to report their own error.
const raceGrace = 250 * time.Millisecond

type CoordinatorInterface interface {
	Probe(ctx context.Context, address string, timeout time.Duration, protocol models.ProtocolType) (*models.ServerInfo, error)
}

// Coordinator pings a server over one protocol or races Java against Bedrock.
type Coordinator struct {
	java    ProbeInterface
	bedrock ProbeInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewCoordinator(java JavaProbeInterface, bedrock BedrockProbeInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) CoordinatorInterface {
	return &Coordinator{
		java:    java,
		bedrock: bedrock,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Coordinator) Probe(ctx context.Context, address string, timeout time.Duration, protocol models.ProtocolType) (*models.ServerInfo, error) {
	switch protocol {
	case models.ProtocolJava:
		return c.probeOne(ctx, c.java, models.ProtocolJava, address, timeout)
	case models.ProtocolBedrock:
		return c.probeOne(ctx, c.bedrock, models.ProtocolBedrock, address, timeout)
	case models.ProtocolAuto:
		return c.race(ctx, address, timeout)
	default:
		return nil, fmt.Errorf("unsupported protocol type %s", protocol)
	}
}

func (c *Coordinator) probeOne(ctx context.Context, probe ProbeInterface, protocol models.ProtocolType, address string, timeout time.Duration) (*models.ServerInfo, error) {
	start := time.Now()
	info, err := safeProbe(ctx, probe, protocol, address, timeout)
	elapsed := time.Since(start)

	c.metrics.ObserveProbeDuration(protocol.String(), elapsed)
	c.metrics.IncProbesTotal(protocol.String(), err == nil)

	if err != nil {
		c.logger.Debugf(providers.TypeProbe, "%s probe of %s failed after %s: %s", protocol, address, elapsed, err)
		return nil, err
	}
	if info == nil {
		return nil, malformed(protocol, "probe returned no data")
	}
	c.logger.Debugf(providers.TypeProbe, "%s probe of %s answered in %dms", protocol, address, info.Latency)
	return info, nil
}

// safeProbe turns a panicking probe into an error. Auto races run probes on
// their own goroutines where a panic would otherwise take the process down.
func safeProbe(ctx context.Context, probe ProbeInterface, protocol models.ProtocolType, address string, timeout time.Duration) (info *models.ServerInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info, err = nil, fmt.Errorf("%w: %s probe panicked: %v", models.ErrInternal, protocol, r)
		}
	}()
	if probe == nil {
		return nil, fmt.Errorf("%w: no %s probe configured", models.ErrInternal, protocol)
	}
	return probe.Probe(ctx, address, timeout)
}

type raceResult struct {
	info *models.ServerInfo
	err  error
}

// race runs both probes concurrently and returns the first success. Which
// protocol wins when both answer at once depends on scheduling. Returning
// cancels the shared context so the losing probe stops early; its result is
// dropped into the buffered channel and discarded.
func (c *Coordinator) race(ctx context.Context, address string, timeout time.Duration) (*models.ServerInfo, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	contenders := []struct {
		protocol models.ProtocolType
		probe    ProbeInterface
	}{
		{models.ProtocolJava, c.java},
		{models.ProtocolBedrock, c.bedrock},
	}

	results := make(chan raceResult, len(contenders))
	for _, contender := range contenders {
		go func() {
			info, err := c.probeOne(raceCtx, contender.probe, contender.protocol, address, timeout)
			results <- raceResult{info: info, err: err}
		}()
	}

	deadline := time.NewTimer(timeout + raceGrace)
	defer deadline.Stop()

	errs := make([]error, 0, len(contenders))
	for len(errs) < len(contenders) {
		select {
		case r := <-results:
			if r.err == nil {
				return r.info, nil
			}
			errs = append(errs, r.err)
		case <-deadline.C:
			errs = append(errs, &ProbeError{
				Protocol: models.ProtocolAuto,
				Kind:     ErrTimeout,
				Err:      errors.New("neither protocol returned a valid response"),
			})
			return nil, &RaceError{Errs: errs}
		case <-ctx.Done():
			return nil, classify(models.ProtocolAuto, ctx.Err())
		}
	}
	return nil, &RaceError{Errs: errs}
}
