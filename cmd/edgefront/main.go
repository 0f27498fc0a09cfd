package main

import (
	"context"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/mt-inside/go-usvc"

	"github.com/edgefront/edgefront/pkg/build"
	"github.com/edgefront/edgefront/pkg/config"
	"github.com/edgefront/edgefront/pkg/output"
	"github.com/edgefront/edgefront/pkg/server"
)

var opts struct {
	ListenAddr   string `short:"a" long:"addr" description:"Listen address eg 0.0.0.0:3000; overrides config file and env"`
	ConfigPath   string `short:"c" long:"config" description:"Path to YAML config file"`
	NoTrustProxy bool   `long:"no-trust-proxy" description:"Don't believe X-Forwarded-* headers; resolve clients from the socket"`
	Verbose      bool   `short:"v" long:"verbose" description:"Debug logging"`
}

func main() {
	_, err := flags.Parse(&opts)
	if err != nil {
		// go-flags has already printed the problem (or the help text)
		os.Exit(1)
	}

	log := usvc.GetLogger(opts.Verbose)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Error(err, "Invalid configuration")
		os.Exit(1)
	}

	/* Flag overrides, then re-check */

	if opts.ListenAddr != "" {
		cfg.ListenAddr = opts.ListenAddr
	}
	if opts.NoTrustProxy {
		cfg.TrustProxy.Enabled = false
	}
	if err := config.Validate(cfg); err != nil {
		log.Error(err, "Invalid configuration")
		os.Exit(1)
	}

	log.Info(build.NameAndVersion(),
		"addr", cfg.ListenAddr,
		"trust-proxy", cfg.TrustProxy.Enabled,
	)

	s := server.New(cfg, log, output.Auto(log), nil)
	if err := s.Run(context.Background()); err != nil {
		log.Error(err, "Shutting down")
		os.Exit(1)
	}
}
