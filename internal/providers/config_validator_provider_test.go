package providers

import (
	"mcstatus/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: structures.StorageConfig{
			DataRoot: "/tmp/mcstatus",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Statistic: structures.StatisticConfig{
			Timezone: "UTC",
		},
		Refresh: structures.RefreshConfig{
			Interval: time.Minute,
			Servers: []structures.WatchedServer{
				{Address: "mc.example.com", Protocol: "java"},
				{Address: "pe.example.com", Protocol: "Bedrock"},
				{Address: "any.example.com"},
			},
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyDataRoot(t *testing.T) {
	c := validConfig()
	c.Storage.DataRoot = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownTimezone(t *testing.T) {
	c := validConfig()
	c.Statistic.Timezone = "Mars/Olympus_Mons"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownProtocol(t *testing.T) {
	c := validConfig()
	c.Refresh.Servers[0].Protocol = "pocket"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_WatchedServerWithoutAddress(t *testing.T) {
	c := validConfig()
	c.Refresh.Servers[1].Address = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_RefreshNeedsInterval(t *testing.T) {
	c := validConfig()
	c.Refresh.Interval = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())

	c.Refresh.Servers = nil
	assert.NoError(t, v.Validate())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, Location(&structures.Config{}))
	assert.Equal(t, "UTC", Location(validConfig()).String())
}
