// Command trajopt builds time-optimal trajectory problems from a TOML path
// description and plots their initial guess. It records the problem in an
// in-memory solver.Recorder and does not solve it.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/jlmcmchl/TrajoptLib/internal/viz"
	"github.com/jlmcmchl/TrajoptLib/solver"
	"github.com/jlmcmchl/TrajoptLib/trajopt"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	app := &cli.App{
		Name:  "trajopt",
		Usage: "build and plot time-optimal wheeled-robot trajectory problems",
		Commands: []*cli.Command{
			buildCommand(logger.Sugar()),
			plotCommand(logger.Sugar()),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Sugar().Fatalw("trajopt failed", "error", err)
	}
}

func buildCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "parse a TOML path description and record its NLP problem",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Required: true, Usage: "path to a TOML trajectory file"},
			&cli.IntFlag{Name: "max-eval", Value: 1000, Usage: "solver evaluation budget (not read: build records the problem without solving it)"},
		},
		Action: func(c *cli.Context) error {
			path, drivetrain, err := LoadPath(c.String("path"))
			if err != nil {
				return err
			}

			b := &trajopt.Builder{Logger: logger}
			rec := solver.NewRecorder()
			if err := b.Generate(rec, drivetrain, path); err != nil {
				return err
			}

			fmt.Printf("built problem: %d variables, %d constraints\n", len(rec.Variables), len(rec.Constraints))
			return nil
		},
	}
}

func plotCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "plot",
		Usage: "render a path's bumper footprint swept along its initial guess to a PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Required: true, Usage: "path to a TOML trajectory file"},
			&cli.StringFlag{Name: "out", Value: "trajopt.png", Usage: "output PNG path"},
		},
		Action: func(c *cli.Context) error {
			path, _, err := LoadPath(c.String("path"))
			if err != nil {
				return err
			}
			if err := viz.RenderFootprint(path, c.String("out")); err != nil {
				return err
			}
			logger.Infow("wrote plot", "out", c.String("out"))
			return nil
		},
	}
}
