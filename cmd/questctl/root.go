package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/neexbeast/quest-generator/internal/client"
)

type rootOptions struct {
	server     string
	timeout    time.Duration
	configPath string
	json       bool

	settings Settings
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "questctl",
		Short:         "Generate and browse AI fitness quests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			explicit := cmd.Flags().Changed("config")
			if !explicit {
				path = defaultSettingsPath()
			}
			s, err := loadSettings(path, explicit)
			if err != nil {
				return err
			}
			opts.settings = s
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", client.DefaultBaseURL, "quest API base URL")
	flags.DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "per-request timeout")
	flags.StringVar(&opts.configPath, "config", "", "settings file (default ~/"+settingsFile+")")
	flags.BoolVar(&opts.json, "json", false, "print quests as JSON")

	cmd.AddCommand(newGenerateCmd(opts), newDemoCmd(opts))
	return cmd
}

// client builds an API client; explicit flags beat the settings file.
func (o *rootOptions) client(cmd *cobra.Command) (*client.Client, error) {
	server := o.server
	if !cmd.Flags().Changed("server") && o.settings.Server != "" {
		server = o.settings.Server
	}
	timeout := o.timeout
	if !cmd.Flags().Changed("timeout") {
		d, err := o.settings.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		if d > 0 {
			timeout = d
		}
	}
	return client.New(server, timeout), nil
}
