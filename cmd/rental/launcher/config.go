package launcher

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	cli "gopkg.in/urfave/cli.v1"
)

// Config aggregates everything the launcher needs to run the service.
type Config struct {
	Preset   string
	Operator common.Address

	RPC     RPCConfig
	Logging LoggingConfig
}

type RPCConfig struct {
	HTTPAddr string
	HTTPPort int
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	SentryDSN string
}

// MakeConfig merges defaults with CLI flag overrides.
func MakeConfig(ctx *cli.Context) (Config, error) {
	cfg := Config{
		Preset: ctx.GlobalString("preset"),
		RPC: RPCConfig{
			HTTPAddr: ctx.GlobalString("http.addr"),
			HTTPPort: ctx.GlobalInt("http.port"),
		},
		Logging: LoggingConfig{
			Verbosity: ctx.GlobalInt("log.verbosity"),
			Format:    ctx.GlobalString("log.format"),
			SentryDSN: ctx.GlobalString("sentry.dsn"),
		},
	}

	op := ctx.GlobalString("operator")
	if op == "" {
		return cfg, fmt.Errorf("--operator is required")
	}
	if !common.IsHexAddress(op) {
		return cfg, fmt.Errorf("--operator %q is not a hex address", op)
	}
	cfg.Operator = common.HexToAddress(op)

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return cfg, fmt.Errorf("unknown log format %q", cfg.Logging.Format)
	}
	return cfg, nil
}
