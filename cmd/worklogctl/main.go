package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "worklogctl",
		Short:   "Administration tool for the worklogd tracking server",
		Version: Version,
	}

	rootCmd.PersistentFlags().String("db", defaultDBPath(), "Path to the worklog database")

	rootCmd.AddCommand(apikeyCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("WORKLOG_DB_PATH"); path != "" {
		return path
	}
	return "worklog.db"
}
