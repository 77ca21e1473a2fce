package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	FPLAPI  FPLAPI
	Reports Reports
	Log     Log
}

type FPLAPI struct {
	BaseURL   string        `envconfig:"FPL_BASE_URL" default:"https://fantasy.premierleague.com/api" validate:"required,url"`
	UserAgent string        `envconfig:"FPL_USER_AGENT" default:"fplcheck/1.0" validate:"required"`
	Timeout   time.Duration `envconfig:"FPL_TIMEOUT" default:"10s" validate:"gt=0"`
	// Gameweek pins every report to one gameweek; 0 follows the current one.
	Gameweek int `envconfig:"FPL_GAMEWEEK" default:"0" validate:"gte=0,lte=38"`
}

type Reports struct {
	SampleLimit       int `envconfig:"FPL_SAMPLE_LIMIT" default:"500" validate:"gt=0"`
	SubstitutionSlack int `envconfig:"FPL_SUB_SLACK_MINUTES" default:"5" validate:"gte=0"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format string `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=json console"`
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return &c, nil
}
