// Package launcher assembles and runs the rental service: it parses flags,
// configures logging, builds the engine from the selected preset and serves
// the JSON-RPC API until interrupted.
package launcher

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-land-rental/flags"
	"github.com/rony4d/go-land-rental/integration"
	"github.com/rony4d/go-land-rental/rental"
)

var app = flags.NewApp()

func init() {
	app.Flags = flags.CommonFlags()
	app.Action = start
}

// Launch parses the command line and runs the service.
func Launch(args []string) error {
	return app.Run(args)
}

func start(ctx *cli.Context) error {
	cfg, err := MakeConfig(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Logging); err != nil {
		return err
	}

	preset, err := integration.GetPresetByName(cfg.Preset)
	if err != nil {
		return err
	}

	engine, _, _, err := integration.BuildEngine(preset, cfg.Operator)
	if err != nil {
		return err
	}
	defer engine.Close()

	srv := rpc.NewServer()
	if err := srv.RegisterName("rental", rental.NewPublicRentalAPI(engine)); err != nil {
		return err
	}
	defer srv.Stop()

	endpoint := fmt.Sprintf("%s:%d", cfg.RPC.HTTPAddr, cfg.RPC.HTTPPort)
	httpSrv := &http.Server{Addr: endpoint, Handler: srv}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"preset":   preset.Name,
			"operator": cfg.Operator.Hex(),
		}).Info("rental service listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logrus.WithField("signal", sig.String()).Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func setupLogging(cfg LoggingConfig) error {
	if cfg.Verbosity < 0 || cfg.Verbosity > 5 {
		return fmt.Errorf("log verbosity %d out of range", cfg.Verbosity)
	}
	logrus.SetLevel(logrus.Level(cfg.Verbosity))
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return err
		}
		hook.Timeout = 3 * time.Second
		logrus.AddHook(hook)
	}
	return nil
}
