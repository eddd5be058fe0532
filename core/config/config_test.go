package config

import (
	"io/ioutil"
	"log"
	"path/filepath"
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
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, "PS1", cfg.PromptVar)
	assert.Equal(t, "HOME", cfg.HomeVar)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{"defaults pass", func(c *Configuration) {}, false},
		{"negative max_words", func(c *Configuration) { c.MaxWords = -1 }, true},
		{"missing prompt_var", func(c *Configuration) { c.PromptVar = "" }, true},
		{"missing home_var", func(c *Configuration) { c.HomeVar = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, "PS1", cfg.PromptVar)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	err := ioutil.WriteFile(
		filepath.Join(dir, ConfigurationName),
		[]byte("prompt_var: PS1\nhome_var: HOME\nbogus_field: true\n"),
		0600)
	assert.NoError(t, err)

	_, err = Load(dir)
	assert.Error(t, err)
}

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("OpenAppLog", func(t *testing.T) {
		fd, err := cfg.OpenAppLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("ReadAppLog", func(t *testing.T) {
		fd, err := cfg.ReadAppLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("Reinitialize", func(t *testing.T) {
		// A second init must not clobber the existing file.
		assert.Nil(t, Initialize(tempDir, log.New(ioutil.Discard, "", 0)))
	})
}
