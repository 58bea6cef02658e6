package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ardiaca/estrats/pkg/config"
)

// Version information set during build
var version = "dev"

func main() {
	app := kingpin.New("estrats", "Layered configuration-value resolver: process environment variables over a settings.ini, .env or secret-directory repository.")
	app.Version(version)
	debug := app.Flag("debug", "Enable debug logging").Bool()
	searchPath := app.Flag("search-path", "Directory to start the configuration file search from (defaults to the working directory)").String()

	getCmd := app.Command("get", "Resolve a configuration key and print its value")
	getKey := getCmd.Arg("key", "Configuration key to resolve").Required().String()
	var defaultSet bool
	getDefault := getCmd.Flag("default", "Fallback value when the key is undefined").IsSetByUser(&defaultSet).String()
	getCast := getCmd.Flag("cast", "Cast applied to the value (bool, int, float, duration, csv)").Enum("bool", "int", "float", "duration", "csv")

	exportCmd := app.Command("export", "Print every key defined by the detected configuration file")
	exportFormat := exportCmd.Flag("format", "Output format").Default(formatDotenv).Enum(formatDotenv, formatYAML)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	})

	var opts []config.Option
	if *searchPath != "" {
		opts = append(opts, config.WithSearchPath(*searchPath))
	}
	locator := config.NewLocator(opts...)

	var err error
	switch command {
	case getCmd.FullCommand():
		err = runGet(os.Stdout, locator, *getKey, defaultSet, *getDefault, *getCast)
	case exportCmd.FullCommand():
		err = runExport(os.Stdout, locator, *exportFormat)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
