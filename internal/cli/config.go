package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("artslide")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/artslide")
		viper.AddConfigPath("/etc/xdg/artslide")
	}

	viper.SetDefault("folder", "~/Pictures/artworks")
	viper.SetDefault("duration", "10s")
	viper.SetDefault("max_dimension", 2048)
	viper.SetDefault("backdrop_width", 640)
	viper.SetDefault("backdrop_height", 360)
	viper.SetDefault("blur_radius", 10)
	viper.SetDefault("blur_passes", 3)
	viper.SetDefault("darken_factor", 0.6)
	viper.SetDefault("resume", false)
	viper.SetDefault("state_dir", "")

	viper.SetEnvPrefix("artslide")
	viper.AutomaticEnv() // read environment variables that match

	// The config file is optional; everything has a default.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cobra.CheckErr(err)
		}
	}
}
