package models

import (
	"sort"
	"time"
)

// HistoryRetention is how long ping samples are kept before being trimmed.
const HistoryRetention = 10 * 24 * time.Hour

// WeekBuckets is the number of RangeStats in WeekStats: seven full days plus today.
const WeekBuckets = 8

type HistoryEntry struct {
	// Online is the number of players online at this time.
	Online int64 `json:"online"`
	// Max is the number of player slots at this time.
	Max int64 `json:"max"`
}

// PingHistory is the on-disk ping history of one server identity,
// keyed by unix timestamp in seconds.
type PingHistory struct {
	Data map[int64]HistoryEntry `json:"ping_history"`
}

func NewPingHistory() *PingHistory {
	return &PingHistory{Data: make(map[int64]HistoryEntry)}
}

func (ph *PingHistory) Len() int {
	return len(ph.Data)
}

func (ph *PingHistory) Get(ts int64) (HistoryEntry, bool) {
	v, ok := ph.Data[ts]
	return v, ok
}

// TrimOutdated drops every entry older than now minus HistoryRetention.
func (ph *PingHistory) TrimOutdated(now time.Time) {
	cutoff := now.Add(-HistoryRetention).Unix()
	for ts := range ph.Data {
		if ts < cutoff {
			delete(ph.Data, ts)
		}
	}
}

// Add stores a sample at now's second, overwriting a sample from the same second.
func (ph *PingHistory) Add(now time.Time, online, maxPlayers int64) {
	if ph.Data == nil {
		ph.Data = make(map[int64]HistoryEntry)
	}
	ph.Data[now.Unix()] = HistoryEntry{Online: online, Max: maxPlayers}
}

// RangeStats aggregates entries with from <= ts < to, or from <= ts <= to when inclusive.
func (ph *PingHistory) RangeStats(from, to int64, inclusive bool) RangeStats {
	var count, total int64
	var stats RangeStats

	for ts, v := range ph.Data {
		if ts < from || ts > to || (!inclusive && ts == to) {
			continue
		}
		count++
		total += v.Online
		stats.PeakOnline = max(stats.PeakOnline, v.Online)
		stats.PeakMax = max(stats.PeakMax, v.Max)
	}

	if count > 0 {
		stats.AverageOnline = floorDiv(total, count)
	}
	return stats
}

// WeekStats buckets the history by calendar day relative to midnight. Bucket 0 starts
// seven days before midnight, bucket 6 is the day before midnight and bucket 7 runs
// from midnight up to and including now.
func (ph *PingHistory) WeekStats(now, midnight time.Time) WeekStats {
	var ws WeekStats
	for i := 0; i < WeekBuckets-1; i++ {
		from := midnight.AddDate(0, 0, i-(WeekBuckets-1)).Unix()
		to := midnight.AddDate(0, 0, i-(WeekBuckets-2)).Unix()
		ws.DailyStats[i] = ph.RangeStats(from, to, false)
	}
	ws.DailyStats[WeekBuckets-1] = ph.RangeStats(midnight.Unix(), now.Unix(), true)

	for _, s := range ws.DailyStats {
		ws.PeakOnline = max(ws.PeakOnline, s.PeakOnline)
		ws.PeakMax = max(ws.PeakMax, s.PeakMax)
	}
	return ws
}

// Timestamps returns the stored keys in ascending order.
func (ph *PingHistory) Timestamps() []int64 {
	keys := make([]int64, 0, len(ph.Data))
	for ts := range ph.Data {
		keys = append(keys, ts)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Midnight returns the start of now's calendar day in loc.
func Midnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// RangeStats summarises some range of time.
type RangeStats struct {
	// AverageOnline is the floored mean of online players in the range.
	AverageOnline int64 `json:"average_online"`
	PeakOnline    int64 `json:"peak_online"`
	PeakMax       int64 `json:"peak_max"`
}

type WeekStats struct {
	// DailyStats holds seven full days oldest first, then today so far.
	DailyStats [WeekBuckets]RangeStats `json:"daily_stats"`
	PeakOnline int64                   `json:"peak_online"`
	PeakMax    int64                   `json:"peak_max"`
}
