// zonfetch - ZON manifest tooling
//
// Usage:
//
//	zonfetch convert [-o file] [-i n] [--empty-tuple-as-dict] FILE
//	zonfetch fetch [-r] FILE|DIR
//	zonfetch fmt [-o file] FILE
//
// convert parses a ZON file and writes JSON; fetch downloads the
// dependencies a manifest declares into the package cache; fmt re-emits
// a ZON file in canonical form.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/zonfetch/zonfetch/fetch"
	"github.com/zonfetch/zonfetch/zon"
)

var logger zerolog.Logger

func main() {
	app := &cli.App{
		Name:  "zonfetch",
		Usage: "parse ZON files, convert them to JSON, and fetch manifest dependencies",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable verbose logging",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a TOML config file",
			},
		},
		Before: func(c *cli.Context) error {
			level := zerolog.InfoLevel
			if c.Bool("verbose") {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.RFC3339,
			}).Level(level).With().Timestamp().Logger()
			return nil
		},
		Commands: []*cli.Command{
			convertCommand(),
			fetchCommand(),
			fmtCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("failed")
		os.Exit(1)
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a ZON file to JSON",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
			&cli.IntFlag{
				Name:    "indent",
				Aliases: []string{"i"},
				Value:   2,
				Usage:   "JSON indentation, 0 for compact output",
			},
			&cli.BoolFlag{
				Name:  "empty-tuple-as-dict",
				Usage: "parse empty .{} literals as empty objects",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("convert: exactly one FILE argument required", 1)
			}
			file := c.Args().First()
			logger.Info().Str("file", file).Msg("processing file")

			value, err := parseFile(file, c.Bool("empty-tuple-as-dict"))
			if err != nil {
				return err
			}

			out, err := zon.ToJSON(value, c.Int("indent"))
			if err != nil {
				return err
			}
			return writeOutput(c.String("output"), out+"\n")
		},
	}
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "download the dependencies declared by a manifest",
		ArgsUsage: "FILE|DIR",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "also process manifests inside downloaded dependencies",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("fetch: exactly one FILE or DIR argument required", 1)
			}
			path := c.Args().First()

			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}

			fetcher, err := fetch.NewFetcher(cfg, logger)
			if err != nil {
				return err
			}

			deps, err := fetcher.ProcessPath(c.Context, path, c.Bool("recursive"))
			if err != nil {
				return err
			}

			if len(deps) == 0 {
				logger.Warn().Msg("no dependencies were processed")
				return nil
			}
			logger.Info().Int("count", len(deps)).Msg("dependencies processed")
			for name, installed := range deps {
				logger.Info().Str("name", name).Str("path", installed).Msg("installed")
			}
			return nil
		},
	}
}

func fmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "re-emit a ZON file in canonical form",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("fmt: exactly one FILE argument required", 1)
			}
			value, err := parseFile(c.Args().First(), true)
			if err != nil {
				return err
			}
			return writeOutput(c.String("output"), zon.Emit(value)+"\n")
		},
	}
}

func parseFile(path string, emptyAsStruct bool) (*zon.Value, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("file", path).Msg("parsing ZON file")
	return zon.Parse(string(content), zon.ParseOptions{EmptyBraceAsStruct: emptyAsStruct})
}

func loadConfig(path string) (fetch.Config, error) {
	if path == "" {
		return fetch.DefaultConfig(), nil
	}
	logger.Debug().Str("config", path).Msg("loading config")
	return fetch.LoadConfig(path)
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Print(content)
		return err
	}
	logger.Info().Str("output", path).Msg("writing output")
	return os.WriteFile(path, []byte(content), 0o644)
}
