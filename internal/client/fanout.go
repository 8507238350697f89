package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/quest-generator/internal/quest"
)

// GenerateAllStyles requests one quest per style for base concurrently and
// waits for all of them. It is all or nothing: the first failure is returned
// and no quests are, even if other styles succeeded. Results are ordered
// like quest.Styles.
func (c *Client) GenerateAllStyles(ctx context.Context, base quest.GenerationRequest) ([]quest.Quest, error) {
	g, gCtx := errgroup.WithContext(ctx)
	results := make([]*quest.Quest, len(quest.Styles))

	for i, style := range quest.Styles {
		req := base
		req.QuestStyle = style
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s generation panicked: %v", style, r)
				}
			}()
			q, genErr := c.GenerateQuest(gCtx, req)
			if genErr != nil {
				return genErr
			}
			results[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	quests := make([]quest.Quest, 0, len(results))
	for _, q := range results {
		quests = append(quests, *q)
	}
	return quests, nil
}
