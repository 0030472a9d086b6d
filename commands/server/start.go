package server

import (
	"flag"
	"net/http"
	"path/filepath"

	"github.com/algobounty/weave/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagMetrics  = "metrics"
	flagLogLevel = "log_level"
)

// parseFlags applies the start flags on top of given configuration.
func parseFlags(args []string, conf Config) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&conf.Bind, flagBind, conf.Bind, "address server listens on")
	startFlags.BoolVar(&conf.Debug, flagDebug, conf.Debug, "call stack returned on error")
	startFlags.StringVar(&conf.Metrics, flagMetrics, conf.Metrics, "prometheus endpoint address, empty to disable")
	startFlags.StringVar(&conf.LogLevel, flagLogLevel, conf.LogLevel, "minimal level of logged messages")
	if err := startFlags.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	return conf, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(string, log.Logger, bool) (abci.Application, error)

// StartCmd initializes the application, and runs the ABCI server until
// the process is signalled.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	conf, err := LoadConfig(filepath.Join(home, "config", ConfigFile))
	if err != nil {
		return err
	}
	conf, err = parseFlags(args, conf)
	if err != nil {
		return err
	}
	level, err := log.AllowLevel(conf.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger = log.NewFilter(logger, level)

	// Generate the app in the proper dir
	app, err := gen(home, logger, conf.Debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot create listener: "+err.Error())
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(errors.ErrState, "cannot start server: "+err.Error())
	}

	var metrics *http.Server
	if conf.Metrics != "" {
		metrics = serveMetrics(conf.Metrics, logger.With("module", "metrics"))
	}

	// Wait forever
	cmn.TrapSignal(logger, func() {
		if metrics != nil {
			metrics.Close()
		}
		svr.Stop()
	})
	return nil
}

// serveMetrics exposes the default prometheus registry under /metrics.
func serveMetrics(addr string, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	return srv
}
