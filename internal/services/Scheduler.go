package services

import (
	"context"
	"github.com/roylee0704/gron"
	"mcstatus/internal/models"
	"mcstatus/internal/providers"
	"mcstatus/internal/statistic/interfaces"
	"mcstatus/internal/structures"
	"sync"
	"time"
)

type watchedServer struct {
	address  string
	protocol models.ProtocolType
}

// Scheduler resolves the configured servers periodically so their history
// keeps growing even when nobody asks for them.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service StatusServiceInterface
	servers []watchedServer
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	if len(s.servers) == 0 {
		s.logger.Infof(providers.TypeApp, "No servers to refresh, scheduler idle")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Refresh.Interval), s.RefreshAll)
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Refreshing %d servers every %s", len(s.servers), s.config.Refresh.Interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RefreshAll resolves every watched server once. Overlapping runs wait for
// each other.
func (s *Scheduler) RefreshAll() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	for _, srv := range s.servers {
		status := s.service.Resolve(context.Background(), srv.address, srv.protocol, s.config.Storage.DataRoot, s.config.Identicon.Always)
		switch st := status.(type) {
		case *models.OnlineStatus:
			s.logger.Infof(providers.TypeApp, "%s (%s) online: %d/%d players, %dms", srv.address, st.Info.Protocol, st.Info.Players.Online, st.Info.Players.Max, st.Info.Latency)
		case *models.OfflineStatus:
			s.logger.Warnf(providers.TypeApp, "%s (%s) offline, week peak %d", srv.address, srv.protocol, st.WeekStats.PeakOnline)
		case *models.UnreachableStatus:
			s.logger.Warnf(providers.TypeApp, "%s (%s) unreachable: %s", srv.address, srv.protocol, st.Message())
		}
	}
	s.logger.Debugf(providers.TypeApp, "Refreshed %d servers in %s", len(s.servers), time.Since(start))
}

func NewScheduler(config *structures.Config, logger providers.Logger, service StatusServiceInterface) interfaces.SchedulerInterface {
	servers := make([]watchedServer, 0, len(config.Refresh.Servers))
	for _, ws := range config.Refresh.Servers {
		protocol, err := models.ParseProtocolType(ws.Protocol)
		if err != nil {
			logger.Warnf(providers.TypeApp, "Skipping %s: %s", ws.Address, err)
			continue
		}
		servers = append(servers, watchedServer{address: ws.Address, protocol: protocol})
	}

	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		servers: servers,
	}
}
