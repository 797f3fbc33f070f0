package commands

import (
	"git.home.luguber.info/inful/mdhtml/internal/config"
	"git.home.luguber.info/inful/mdhtml/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr      string `help:"Listen address (overrides server.addr)"`
	NoMetrics bool   `help:"Disable the /metrics endpoint"`
}

func (s *ServeCmd) Run(g *Global) error {
	cfg := g.Config.Server
	if s.Addr != "" {
		cfg.Addr = s.Addr
	}
	if s.NoMetrics {
		cfg.Metrics = false
	}
	if err := config.ValidateConfig(&config.Config{Parser: g.Config.Parser, Server: cfg}); err != nil {
		return err
	}
	return httpserver.New(cfg, g.Converter(), g.Logger).Run(g.Ctx)
}
