package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	DataRoot string `yaml:"dataRoot" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type StatisticConfig struct {
	// Timezone names the location used for day buckets; empty means local time.
	Timezone string `yaml:"timezone"`
}

type IdenticonConfig struct {
	Always bool `yaml:"always"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type WatchedServer struct {
	Address  string `yaml:"address" validate:"required"`
	Protocol string `yaml:"protocol" validate:"protocol"`
}

type RefreshConfig struct {
	Interval time.Duration   `yaml:"interval"`
	Servers  []WatchedServer `yaml:"servers"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Storage   StorageConfig   `yaml:"storage"`
	Logger    LoggerConfig    `yaml:"logger"`
	Statistic StatisticConfig `yaml:"statistic"`
	Identicon IdenticonConfig `yaml:"identicon"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Refresh   RefreshConfig   `yaml:"refresh"`
}
