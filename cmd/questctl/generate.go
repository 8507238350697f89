package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/neexbeast/quest-generator/internal/quest"
)

type generateOptions struct {
	userID       string
	level        string
	interests    []string
	neighborhood string
	city         string
	state        string
	landmark     string
	style        string
	duration     float64

	view viewOptions
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate quests (one per style unless --style is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(cmd, root.settings)
			if err != nil {
				return err
			}
			c, err := root.client(cmd)
			if err != nil {
				return err
			}

			var quests []quest.Quest
			if req.QuestStyle != "" {
				q, err := c.GenerateQuest(cmd.Context(), req)
				if err != nil {
					return err
				}
				quests = []quest.Quest{*q}
			} else {
				quests, err = c.GenerateAllStyles(cmd.Context(), req)
				if err != nil {
					return err
				}
			}
			return opts.view.show(cmd.OutOrStdout(), quests, root.json)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.userID, "user", "", "user id (default: settings user_id or a random UUID)")
	f.StringVar(&opts.level, "level", string(quest.LevelIntermediate), "fitness level: beginner, intermediate, advanced")
	f.StringSliceVar(&opts.interests, "interest", nil, "activity interest (repeatable)")
	f.StringVar(&opts.neighborhood, "neighborhood", "", "location neighborhood")
	f.StringVar(&opts.city, "city", "", "location city")
	f.StringVar(&opts.state, "state", "", "location state")
	f.StringVar(&opts.landmark, "landmark", "", "nearby landmark")
	f.StringVar(&opts.style, "style", "", "quest style: fun_exploratory, challenge_based, performance_oriented (default: all)")
	f.Float64Var(&opts.duration, "duration", 30, "target duration in minutes (15-60)")
	opts.view.bind(cmd)

	return cmd
}

// request merges flags over settings. Range checks are left to the server.
func (o *generateOptions) request(cmd *cobra.Command, s Settings) (quest.GenerationRequest, error) {
	changed := cmd.Flags().Changed

	req := quest.GenerationRequest{
		UserID:       o.userID,
		FitnessLevel: quest.FitnessLevel(o.level),
		Interests:    o.interests,
		QuestStyle:   quest.Style(o.style),
		Duration:     o.duration,
	}
	if req.UserID == "" {
		req.UserID = s.UserID
	}
	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}
	if !changed("level") && s.Level != "" {
		req.FitnessLevel = quest.FitnessLevel(s.Level)
	}
	if !changed("interest") {
		req.Interests = s.Interests
	}
	if !changed("duration") && s.Duration > 0 {
		req.Duration = s.Duration
	}

	loc := s.Location
	if changed("neighborhood") {
		loc.Neighborhood = o.neighborhood
	}
	if changed("city") {
		loc.City = o.city
	}
	if changed("state") {
		loc.State = o.state
	}
	if changed("landmark") {
		loc.Landmark = o.landmark
	}
	req.Location = loc.location()

	if req.QuestStyle != "" && !validStyle(req.QuestStyle) {
		return req, fmt.Errorf("unknown style %q", o.style)
	}
	return req, nil
}
