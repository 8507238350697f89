package main

import (
	"github.com/spf13/cobra"
)

func newDemoCmd(root *rootOptions) *cobra.Command {
	var view viewOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Show the server's sample quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.client(cmd)
			if err != nil {
				return err
			}
			quests, _, err := c.DemoQuests(cmd.Context())
			if err != nil {
				return err
			}
			return view.show(cmd.OutOrStdout(), quests, root.json)
		},
	}
	view.bind(cmd)
	return cmd
}
