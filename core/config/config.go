package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "events.log"
)

// Configuration holds the tunable parts of the interpreter.
type Configuration struct {
	configFs afero.Fs

	// PromptVar names the environment parameter expanded for the
	// interactive prompt.
	PromptVar string `json:"prompt_var" validate:"required"`
	// HomeVar names the environment parameter cd falls back to.
	HomeVar string `json:"home_var" validate:"required"`
	// MaxWords bounds the number of words per input line; 0 means
	// unbounded. A line over the bound is rejected with an error.
	MaxWords int `json:"max_words" validate:"gte=0"`
	// LogEvents enables the JSON lines event log.
	LogEvents bool `json:"log_events"`
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
		c.configFs = afero.NewOsFs()
	}
	return c.configFs
}

// OpenAppLog opens the event log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadAppLog opens the event log for reading.
func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// Default returns the embedded default configuration.
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

func fsForDir(dir string) afero.Fs {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return afero.NewBasePathFs(afero.NewOsFs(), abs)
}
