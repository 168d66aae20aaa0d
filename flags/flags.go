// Package flags defines the CLI surface of the rental service.
package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp returns the base cli application for the rental service.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "land-rental"
	app.Usage = "NFT land / node key rental service"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	return app
}

// CommonFlags returns the base set of CLI flags shared across commands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "preset",
			Usage: "Engine preset to run (land|nodekey|fake)",
			Value: "land",
		},
		cli.StringFlag{
			Name:  "operator",
			Usage: "Hex address allowed to mutate engine configuration",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=panic,1=fatal,2=error,3=warn,4=info,5=debug)",
			Value: 4,
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.StringFlag{
			Name:  "sentry.dsn",
			Usage: "Sentry DSN for error reporting (disabled when empty)",
		},
		cli.StringFlag{
			Name:  "http.addr",
			Usage: "HTTP JSON-RPC listening interface",
			Value: "127.0.0.1",
		},
		cli.IntFlag{
			Name:  "http.port",
			Usage: "HTTP JSON-RPC listening port",
			Value: 18545,
		},
	}
}
