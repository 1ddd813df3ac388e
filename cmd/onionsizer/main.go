package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/urfave/cli"
)

const defaultDebugLevel = "info"

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[onionsizer] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "onionsizer"
	app.Usage = "estimate the number of hops that fit in a payment onion"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "debuglevel",
			Value: defaultDebugLevel,
			Usage: "logging level, one of {trace, debug, info, " +
				"warn, error, critical, off}",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		level, ok := btclog.LevelFromString(
			ctx.GlobalString("debuglevel"),
		)
		if !ok {
			return fmt.Errorf("invalid debug level: %v",
				ctx.GlobalString("debuglevel"))
		}
		log.SetLevel(level)

		return nil
	}
	app.Commands = []cli.Command{
		planCommand,
		recordsCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
