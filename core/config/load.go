package config

import (
	"errors"
	"io/fs"
	"io/ioutil"
	"log"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory. A missing
// config.yaml is not an error; the embedded defaults are used instead.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := ioutil.ReadFile(filepath.Join(path, ConfigurationName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		out := defaultConfig()
		out.configFs = fsForDir(path)
		return out, nil
	case err != nil:
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	out.configFs = fsForDir(path)
	return &out, nil
}

// Initialize writes the default configuration into the directory,
// skipping anything that already exists.
func Initialize(dir string, logger *log.Logger) error {
	target := filepath.Join(dir, ConfigurationName)
	if _, err := ioutil.ReadFile(target); err == nil {
		logger.Printf("%s already exists, skipping", target)
		return nil
	}

	logger.Printf("writing %s", target)
	return ioutil.WriteFile(target, defaultConfigData, 0600)
}
