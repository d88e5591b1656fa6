package main

import (
	"os"
	"strings"

	"git.gammaspectra.live/P2Pool/progpow/utils"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logCaller bool
)

var rootCmd = &cobra.Command{
	Use:   "progpow",
	Short: "ProgPoW hash verification",
	Long: `Computes and verifies ProgPoW mix and final digests.

Flags can also be set in a config file (default $HOME/.progpow/progpow.yaml)
or through PROGPOW_ prefixed environment variables, for example PROGPOW_LANE_ROUTINES=4.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		utils.Errorf("ProgPoW", "%s", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.progpow/progpow.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "log every hashing step")
	rootCmd.PersistentFlags().BoolVar(&logCaller, "log-caller", false, "include source file, line and function in log lines")
}

func initConfig() {
	utils.LogFile = logCaller
	utils.LogFunc = logCaller

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Expand("~/.progpow")
		if err != nil {
			utils.Fatalf("expanding config directory: %s", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName("progpow")
	}

	viper.SetEnvPrefix("progpow")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		utils.Logf("ProgPoW", "Using config file: %s", viper.ConfigFileUsed())
	}
}
