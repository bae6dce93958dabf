package providers

import (
	"fmt"
	"github.com/gookit/validate"
	"mcstatus/internal/models"
	"mcstatus/internal/structures"
	"time"
)

func init() {
	validate.AddValidator("protocol", func(val interface{}) bool {
		s, ok := val.(string)
		if !ok {
			return false
		}
		_, err := models.ParseProtocolType(s)
		return err == nil
	})
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	checks := []interface{}{
		&cv.conf.WebServer,
		&cv.conf.Storage,
		&cv.conf.Logger,
	}
	for i := range cv.conf.Refresh.Servers {
		checks = append(checks, &cv.conf.Refresh.Servers[i])
	}

	for _, c := range checks {
		v := validate.Struct(c)
		if !v.Validate() {
			return fmt.Errorf("invalid config: %s", v.Errors.One())
		}
	}

	if cv.conf.Statistic.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.Statistic.Timezone); err != nil {
			return fmt.Errorf("invalid config: statistic.timezone: %w", err)
		}
	}
	if len(cv.conf.Refresh.Servers) > 0 && cv.conf.Refresh.Interval <= 0 {
		return fmt.Errorf("invalid config: refresh.interval must be positive")
	}
	return nil
}

// Location resolves the configured statistic timezone.
func Location(conf *structures.Config) *time.Location {
	if conf.Statistic.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(conf.Statistic.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
