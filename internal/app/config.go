package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	DescriptorPath string // descriptor document, or a directory to search
	ParamsPath     string // optional parameter-definition document
	Tx             bool   // transmit-side selection; false selects receive

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DescriptorPath == "" {
		return nil, errors.New("DescriptorPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
