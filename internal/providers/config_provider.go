package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"mcstatus/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("refresh.interval", 15*time.Minute)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "MCSTATUS_LOG_LEVEL")
	v.BindEnv("storage.dataRoot", "MCSTATUS_DATA_ROOT")
	v.BindEnv("cache.enabled", "MCSTATUS_CACHE_ENABLED")
	v.BindEnv("cache.size", "MCSTATUS_CACHE_SIZE")
	v.BindEnv("refresh.interval", "MCSTATUS_REFRESH_INTERVAL")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "mcstatus"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
