// Package cli wires the command line, configuration and startup of the
// slideshow.
package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"artslide/internal/artwork"
	"artslide/internal/pipeline"
	"artslide/internal/slideshow"
	"artslide/internal/store"
	"artslide/internal/ui"
)

const version = "1.0.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "artslide [folder]",
	Short: "A fullscreen artwork slideshow",
	Long: `Artslide cycles through the images of a folder, rendering each
photo centered over a blurred, darkened backdrop of itself with a
title/artist/year caption read from optional JSON sidecar files.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if v, err := cmd.Flags().GetBool("debug"); err == nil && v {
			log.SetLevel(log.DebugLevel)
		}
		if v, err := cmd.Flags().GetBool("version"); err == nil && v {
			log.Infof("artslide version %v", version)
			return
		}
		if v, err := cmd.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			for k, v := range viper.AllSettings() {
				log.Infof("  %s = %v", k, v)
			}
			return
		}

		folder := canonicalPath(viper.GetString("folder"))
		if len(args) > 0 {
			folder = canonicalPath(args[0])
		}

		artworks, err := artwork.Discover(folder)
		if err != nil {
			// No artwork list means nothing to run; fail before any
			// window is shown.
			log.Fatalf("Error scanning folder: %v", err)
		}
		log.Infof("Found %d artworks in %s", len(artworks), folder)

		ctrl := slideshow.NewController(
			artworks,
			pipeline.NewProcessor(pipelineConfig()),
			viper.GetDuration("duration"),
			resumeIndex(artworks),
		)
		defer ctrl.Close()

		if db := openStateDB(); db != nil {
			defer db.Close()
			ctrl.OnDisplay = func(info artwork.Info) {
				if err := db.SetLastPath(info.Path); err != nil {
					log.Debugf("could not record resume state: %v", err)
				}
			}
		}

		ui.CreateApplication(ctrl)
	},
}

// pipelineConfig reads the pipeline constants from the resolved
// configuration.
func pipelineConfig() pipeline.Config {
	return pipeline.Config{
		MaxDimension:   viper.GetInt("max_dimension"),
		BackdropWidth:  viper.GetInt("backdrop_width"),
		BackdropHeight: viper.GetInt("backdrop_height"),
		BlurRadius:     viper.GetInt("blur_radius"),
		BlurPasses:     viper.GetInt("blur_passes"),
		DarkenFactor:   viper.GetFloat64("darken_factor"),
	}
}

// openStateDB opens the resume store when resume is enabled. Any
// failure is logged and treated as "no resume".
func openStateDB() *store.StateDB {
	if !viper.GetBool("resume") {
		return nil
	}
	db, err := store.NewStateDB(viper.GetString("state_dir"))
	if err != nil {
		log.Warnf("resume disabled: %v", err)
		return nil
	}
	return db
}

// resumeIndex returns the index of the artwork recorded by the resume
// store, or 0 when resume is off or the record no longer matches.
func resumeIndex(artworks []artwork.Info) int {
	db := openStateDB()
	if db == nil {
		return 0
	}
	defer db.Close()
	last, err := db.LastPath()
	if err != nil || last == "" {
		return 0
	}
	for i, info := range artworks {
		if info.Path == last {
			log.Debugf("resuming at %s", last)
			return i
		}
	}
	return 0
}

func canonicalPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return os.Getenv("HOME")
	}
	if strings.HasPrefix(path, "~/") {
		return strings.Replace(path, "~", os.Getenv("HOME"), 1)
	}
	return path
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var cfgFile string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/artslide/artslide.toml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("show-config", false, "Dump resolved config")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Print version")
}
