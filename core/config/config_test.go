package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, "minishell> ", cfg.Prompt)
	assert.Equal(t, "> ", cfg.ContinuationPrompt)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, 1000, cfg.HistoryLimit)
}

func TestConfiguration_Validate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"default":       {mutate: func(*Configuration) {}},
		"bad color":     {mutate: func(c *Configuration) { c.Color = "sometimes" }, wantErr: "color"},
		"empty prompt":  {mutate: func(c *Configuration) { c.Prompt = "" }, wantErr: "prompt"},
		"zero history":  {mutate: func(c *Configuration) { c.HistoryLimit = 0 }, wantErr: "history_limit"},
		"never colored": {mutate: func(c *Configuration) { c.Color = ColorNever }},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestConfiguration_HistoryPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg := defaultConfig()
	assert.Equal(t, "/home/tester/.minishell_history", cfg.HistoryPath())

	cfg.HistoryFile = "/tmp/hist"
	assert.Equal(t, "/tmp/hist", cfg.HistoryPath())
}

func TestConfiguration_OpenEventLogDisabled(t *testing.T) {
	fd, err := defaultConfig().OpenEventLog()
	assert.NoError(t, err)
	assert.Nil(t, fd)
}

func TestConfiguration_ReadEventLogDisabled(t *testing.T) {
	_, err := defaultConfig().ReadEventLog()
	assert.ErrorIs(t, err, ErrNoEventLog)
}
