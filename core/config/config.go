package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/minishell/core/history"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

// ErrNoEventLog is returned when reading an event log that isn't configured.
var ErrNoEventLog = errors.New("no event_log is configured")

const (
	ConfigurationName = "config.yaml"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Prompt             string `json:"prompt" validate:"required"`
	ContinuationPrompt string `json:"continuation_prompt"`
	HeredocPrompt      string `json:"heredoc_prompt"`
	Color              string `json:"color" validate:"oneof=always auto never"`

	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gt=0"`

	EventLog    string `json:"event_log"`
	ClearScreen bool   `json:"clear_screen"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// HistoryPath returns the file the history is kept in.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" {
		return history.DefaultPath()
	}
	return c.HistoryFile
}

// eventLogFs returns the filesystem the event log path is relative to.
func (c *Configuration) eventLogFs() afero.Fs {
	if filepath.IsAbs(c.EventLog) {
		return afero.NewOsFs()
	}
	return c.fs()
}

// OpenEventLog opens the event log in an append only state. It returns nil if
// no event log is configured.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	return c.eventLogFs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, ErrNoEventLog
	}
	return c.eventLogFs().Open(c.EventLog)
}

// Default returns the built-in configuration, relative to the working
// directory.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
