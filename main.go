package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"

	"syosetu-downloader/cmd"
)

func main() {
	cmd.SetupLogging(os.Stderr, false)
	if err := cmd.RootCmd.Execute(); err != nil {
		var reported *cmd.ReportedError
		if errors.As(err, &reported) {
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Error executing command")
	}
}
