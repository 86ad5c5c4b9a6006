package main

import (
	"github.com/spf13/cobra"
)

const appName = "ogni-scan"

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   appName,
		Short: "ogni-scan indexes resumes and answers recruiter queries over them",
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "./configs/config.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
}
