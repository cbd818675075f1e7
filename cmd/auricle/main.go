package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := buildRoot().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GlobalFlags holds the persistent flags shared by all commands.
type GlobalFlags struct {
	ConfigPath string
}

// StatusFlags holds flags for the status command.
type StatusFlags struct {
	APIUrl string
}

func buildRoot() *cobra.Command {
	var gf GlobalFlags

	root := &cobra.Command{
		Use:           "auricle",
		Short:         "auricle tracks desktop focus and binds accessibility surfaces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&gf.ConfigPath, "config", "c", "", "path to TOML config file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the focus-tracking agent in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(gf.ConfigPath)
		},
	}

	var sf StatusFlags
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Query a running agent over its HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStatus(sf)
		},
	}
	statusCmd.Flags().StringVar(&sf.APIUrl, "api-url", "http://127.0.0.1:8080/auricle", "base URL of the agent API")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	root.AddCommand(runCmd, statusCmd, versionCmd)
	return root
}
