package config

import (
	"fmt"
	"net"

	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
)

// ValidateConfig validates a configuration after defaults have been applied.
func ValidateConfig(cfg *Config) error {
	cv := configurationValidator{config: cfg}
	return cv.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateParser(); err != nil {
		return err
	}
	return cv.validateServer()
}

func (cv *configurationValidator) validateParser() error {
	d := cv.config.Parser.MaxNestingDepth
	if d < 1 || d > MaxNestingDepthLimit {
		return derrors.ValidationFailed("parser.max_nesting_depth",
			fmt.Sprintf("must be between 1 and %d, got %d", MaxNestingDepthLimit, d))
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	s := cv.config.Server
	if _, _, err := net.SplitHostPort(s.Addr); err != nil {
		return derrors.ValidationFailed("server.addr", err.Error())
	}
	if s.MaxBodyBytes < 1 {
		return derrors.ValidationFailed("server.max_body_bytes",
			fmt.Sprintf("must be positive, got %d", s.MaxBodyBytes))
	}
	return nil
}
