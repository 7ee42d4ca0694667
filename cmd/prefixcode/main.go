package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version string = "master" // Set with -ldflags "-X main.version=..."
var log = logrus.New()

func newRootCmd() *cobra.Command {
	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print version of prefixcode",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:   "prefixcode",
		Short: "Analyze a text source and build Huffman and Shannon-Fano codes for it",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			levelName, _ := cmd.Flags().GetString("log-level")
			level, err := logrus.ParseLevel(levelName)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	addSourceFlags(rootCmd)

	rootCmd.AddCommand(cmdVersion, newServeCmd())
	rootCmd.AddCommand(newCoderCmds()...)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}
