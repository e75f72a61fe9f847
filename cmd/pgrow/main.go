// Command pgrow decodes PostgreSQL composite and array literals into JSON or
// a tree dump, and encodes JSON into literals.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	jsoniter "github.com/json-iterator/go"

	"github.com/siilike/pgrow"
)

// json decodes numbers as json.Number so they reach literals unchanged.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// cli holds what every command shares.
type cli struct {
	logger   log.Logger
	stdin    io.Reader
	stdout   io.Writer
	logLevel string
	maxDepth int
}

func (c *cli) options() []pgrow.Option {
	return []pgrow.Option{pgrow.MaxDepth(c.maxDepth)}
}

func newApp(c *cli) *kingpin.Application {
	app := kingpin.New("pgrow", "Decode and encode PostgreSQL composite and array literals.")
	app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("info").Envar("PGROW_LOG_LEVEL").EnumVar(&c.logLevel, "debug", "info", "warn", "error")
	app.Flag("max-depth", "Maximum nesting depth when walking decoded values.").
		Default("1000").Envar("PGROW_MAX_DEPTH").IntVar(&c.maxDepth)
	app.PreAction(func(_ *kingpin.ParseContext) error {
		c.logger = newLogger(c.logLevel, os.Stderr)
		return nil
	})

	addDecodeCommand(app, c)
	addEncodeCommand(app, c)
	return app
}

func newLogger(lvl string, w io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, allowLevel(lvl))
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

func allowLevel(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

func main() {
	c := &cli{logger: log.NewNopLogger(), stdin: os.Stdin, stdout: os.Stdout}
	app := newApp(c)
	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
