package main

import (
	"fmt"
	"os"
	"time"

	"spacebook/pkg/config"

	"github.com/spf13/cobra"
)

const JobName = "migrate"

func newRootCmd() *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Prepare reservation stores and seed the space catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the job")

	loadConfig := func() *config.Config {
		cfg := config.Load(JobName)
		cfg.LogConfiguration()
		return cfg
	}

	root.AddCommand(newMongoCmd(loadConfig, &timeout))
	root.AddCommand(newPostgresCmd(loadConfig, &timeout))
	root.AddCommand(newSeedCmd(loadConfig, &timeout))

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
