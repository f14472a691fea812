package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Fetch the weather for each snapshot date and replace the weather table",
	RunE:  runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	ws, err := newWeatherService()
	if err != nil {
		log.Error().Err(err).Str("city", pipe.City).Msg("skipping weather stage")
		return nil
	}
	return newPipeline(cmd.Context(), ws).RunWeather(cmd.Context())
}
