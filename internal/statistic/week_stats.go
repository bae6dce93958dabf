package statistic

import (
	"github.com/benbjohnson/clock"
	"mcstatus/internal/models"
	"mcstatus/internal/providers"
	"path/filepath"
	"time"
)

const weekStatsFileName = "week_stats"

type WeekStatsEngineInterface interface {
	Record(serverDir string, online, maxPlayers int64) (models.WeekStats, error)
}

// WeekStatsEngine collects ping samples per server and summarises the last
// week or so of them.
type WeekStatsEngine struct {
	files    *FileManager
	clock    clock.Clock
	location *time.Location
	logger   providers.Logger
}

func NewWeekStatsEngine(files *FileManager, clk clock.Clock, location *time.Location, logger providers.Logger) WeekStatsEngineInterface {
	return &WeekStatsEngine{
		files:    files,
		clock:    clk,
		location: location,
		logger:   logger,
	}
}

// Record trims outdated samples, stores the current one, persists the
// history and returns freshly computed week stats. A corrupt history file
// starts over from empty.
func (e *WeekStatsEngine) Record(serverDir string, online, maxPlayers int64) (models.WeekStats, error) {
	path := filepath.Join(serverDir, weekStatsFileName)
	now := e.clock.Now()

	history, found, err := LoadOrDefault[models.PingHistory](e.files, path)
	if err != nil {
		return models.WeekStats{}, err
	}
	if !found || history.Data == nil {
		history = *models.NewPingHistory()
	}

	before := history.Len()
	history.TrimOutdated(now)
	if trimmed := before - history.Len(); trimmed > 0 {
		e.logger.Debugf(providers.TypeStorage, "Trimmed %d outdated samples from %s", trimmed, path)
	}
	history.Add(now, online, maxPlayers)

	if err := e.files.Save(path, &history); err != nil {
		return models.WeekStats{}, err
	}

	return history.WeekStats(now, models.Midnight(now, e.location)), nil
}
