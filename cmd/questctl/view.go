package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/neexbeast/quest-generator/internal/quest"
)

// viewOptions narrow and present a quest list.
type viewOptions struct {
	difficulty  string
	maxDuration float64
	tag         string
	detail      int
}

func (v *viewOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&v.difficulty, "difficulty", "", "only show quests of this difficulty")
	f.Float64Var(&v.maxDuration, "max-duration", 0, "only show quests at most this many minutes long")
	f.StringVar(&v.tag, "tag", "", "only show quests with this tag (fuzzy matched)")
	f.IntVar(&v.detail, "detail", 0, "print the Nth listed quest in full")
}

// filter resolves the tag query against the tags present in quests.
func (v *viewOptions) filter(quests []quest.Quest) (quest.Filter, error) {
	f := quest.Filter{MaxDuration: v.maxDuration}
	if v.difficulty != "" {
		lvl := quest.FitnessLevel(v.difficulty)
		if !validLevel(lvl) {
			return f, fmt.Errorf("unknown difficulty %q", v.difficulty)
		}
		f.Difficulty = lvl
	}
	if v.tag != "" {
		tag, ok := quest.MatchTag(v.tag, quest.UniqueTags(quests))
		if !ok {
			// Nothing can match; keep the raw query so the list comes back empty.
			tag = v.tag
		}
		f.Tag = tag
	}
	return f, nil
}

func (v *viewOptions) show(w io.Writer, quests []quest.Quest, asJSON bool) error {
	f, err := v.filter(quests)
	if err != nil {
		return err
	}
	shown := f.Apply(quests)

	if v.detail > 0 {
		if v.detail > len(shown) {
			return fmt.Errorf("--detail %d is out of range: %d quest(s) listed", v.detail, len(shown))
		}
		q := shown[v.detail-1]
		if asJSON {
			return writeJSON(w, q)
		}
		renderDetail(w, q)
		return nil
	}

	if asJSON {
		return writeJSON(w, shown)
	}
	renderList(w, shown, len(quests), f)
	return nil
}

func validLevel(l quest.FitnessLevel) bool {
	return slices.Contains(quest.FitnessLevels, l)
}

func validStyle(s quest.Style) bool {
	return slices.Contains(quest.Styles, s)
}
