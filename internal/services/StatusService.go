package services

import (
	"context"
	"fmt"
	"go.uber.org/atomic"
	"mcstatus/internal/identicon"
	"mcstatus/internal/models"
	"mcstatus/internal/ping"
	"mcstatus/internal/providers"
	"mcstatus/internal/statistic"
	"strings"
	"time"
)

type StatusServiceInterface interface {
	Resolve(ctx context.Context, address string, protocol models.ProtocolType, dataRoot string, alwaysUseIdenticon bool) models.ServerStatus
	Counters() Counters
}

// Counters are lifetime resolve totals, reported by the health endpoint.
type Counters struct {
	Resolves    int64 `json:"resolves"`
	Online      int64 `json:"online"`
	Offline     int64 `json:"offline"`
	Unreachable int64 `json:"unreachable"`
}

type StatusService struct {
	coordinator ping.CoordinatorInterface
	favicons    statistic.FaviconCacheInterface
	weekStats   statistic.WeekStatsEngineInterface
	identicons  identicon.GeneratorInterface
	files       *statistic.FileManager
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	timeout     time.Duration

	resolvesTotal    atomic.Int64
	onlineTotal      atomic.Int64
	offlineTotal     atomic.Int64
	unreachableTotal atomic.Int64
}

func NewStatusService(
	coordinator ping.CoordinatorInterface,
	favicons statistic.FaviconCacheInterface,
	weekStats statistic.WeekStatsEngineInterface,
	identicons identicon.GeneratorInterface,
	files *statistic.FileManager,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) StatusServiceInterface {
	return &StatusService{
		coordinator: coordinator,
		favicons:    favicons,
		weekStats:   weekStats,
		identicons:  identicons,
		files:       files,
		logger:      logger,
		metrics:     metrics,
		timeout:     ping.DefaultTimeout,
	}
}

// Resolve pings the server at address and folds the result together with
// the state cached under dataRoot. It always returns a status; every fault,
// including a panic below it, ends up as *models.UnreachableStatus.
func (s *StatusService) Resolve(ctx context.Context, address string, protocol models.ProtocolType, dataRoot string, alwaysUseIdenticon bool) (status models.ServerStatus) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf(providers.TypeApp, "Recovered from panic while resolving %s: %v", address, r)
			status = &models.UnreachableStatus{Err: fmt.Errorf("%w: a panic occurred: %v", models.ErrInternal, r)}
		}
		s.count(status)
	}()

	status, err := s.resolve(ctx, address, protocol, dataRoot, alwaysUseIdenticon)
	if err != nil {
		s.logger.Infof(providers.TypeApp, "Server %s (%s) unreachable: %s", address, protocol, err)
		return &models.UnreachableStatus{Err: err}
	}
	return status
}

func (s *StatusService) resolve(ctx context.Context, address string, protocol models.ProtocolType, dataRoot string, alwaysUseIdenticon bool) (models.ServerStatus, error) {
	if address == "" {
		return nil, models.InvalidInputf("empty server address")
	}
	if dataRoot == "" {
		return nil, models.InvalidInputf("empty app data root path")
	}
	if !protocol.Valid() {
		return nil, models.InvalidInputf("unknown protocol type %d", int(protocol))
	}

	identity := models.NewIdentity(address, protocol)
	dir := identity.Dir(dataRoot)
	if err := s.files.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating server folder: %w", err)
	}

	info, probeErr := s.coordinator.Probe(ctx, address, s.timeout, protocol)
	if probeErr == nil {
		return s.online(identity, dir, info, alwaysUseIdenticon)
	}
	// A caller that gave up says nothing about the server, so no zero sample.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("resolve abandoned by caller: %w", ctxErr)
	}

	cached, found, err := s.favicons.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("reading cached favicon: %w", err)
	}
	if !found {
		return nil, probeErr
	}

	s.logger.Debugf(providers.TypeApp, "Server %s offline, serving cached data: %s", identity, probeErr)
	weekStats, err := s.weekStats.Record(dir, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("recording week stats: %w", err)
	}
	return &models.OfflineStatus{
		Favicon:   s.selectFavicon(identity, cached.Favicon, alwaysUseIdenticon),
		WeekStats: weekStats,
	}, nil
}

func (s *StatusService) online(identity models.Identity, dir string, info *models.ServerInfo, alwaysUseIdenticon bool) (models.ServerStatus, error) {
	if err := s.favicons.Store(dir, info.Favicon); err != nil {
		return nil, fmt.Errorf("writing cached favicon: %w", err)
	}

	weekStats, err := s.weekStats.Record(dir, info.Players.Online, info.Players.Max)
	if err != nil {
		return nil, fmt.Errorf("recording week stats: %w", err)
	}

	return &models.OnlineStatus{
		Info:      *info,
		Favicon:   s.selectFavicon(identity, models.NewCachedFavicon(info.Favicon).Favicon, alwaysUseIdenticon),
		WeekStats: weekStats,
	}, nil
}

// selectFavicon prefers the server's own favicon and falls back to an
// identicon keyed on the identity, so a server keeps the same placeholder.
func (s *StatusService) selectFavicon(identity models.Identity, favicon *string, alwaysUseIdenticon bool) models.Favicon {
	if !alwaysUseIdenticon && favicon != nil && *favicon != "" {
		return models.Favicon{Source: models.FaviconServerProvided, Data: *favicon}
	}
	if generated, ok := s.identicons.Generate(identity.Protocol, identity.Address); ok {
		return models.Favicon{Source: models.FaviconGenerated, Data: generated}
	}
	return models.Favicon{Source: models.FaviconNone}
}

func (s *StatusService) count(status models.ServerStatus) {
	s.resolvesTotal.Inc()
	switch status.(type) {
	case *models.OnlineStatus:
		s.onlineTotal.Inc()
	case *models.OfflineStatus:
		s.offlineTotal.Inc()
	case *models.UnreachableStatus:
		s.unreachableTotal.Inc()
	}
	if status != nil {
		s.metrics.IncResolvesTotal(strings.ToLower(status.String()))
	}
}

func (s *StatusService) Counters() Counters {
	return Counters{
		Resolves:    s.resolvesTotal.Load(),
		Online:      s.onlineTotal.Load(),
		Offline:     s.offlineTotal.Load(),
		Unreachable: s.unreachableTotal.Load(),
	}
}
