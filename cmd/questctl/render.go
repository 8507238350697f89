package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/neexbeast/quest-generator/internal/client"
	"github.com/neexbeast/quest-generator/internal/quest"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderList(w io.Writer, shown []quest.Quest, total int, f quest.Filter) {
	if len(shown) == 0 {
		if f.Active() {
			fmt.Fprintln(w, "No quests match the current filters.")
		} else {
			fmt.Fprintln(w, "No quests.")
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tDIFFICULTY\tDURATION\tXP\tCOINS\tTAGS")
	for i, q := range shown {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s min\t%s\t%s\t%s\n",
			i+1, q.Title, q.Difficulty, num(q.EstimatedDuration), num(q.TotalXP), num(q.CoinReward),
			strings.Join(q.Tags, ", "))
	}
	_ = tw.Flush()

	if f.Active() {
		fmt.Fprintf(w, "\nShowing %d of %d quests (%s)\n", len(shown), total, describeFilter(f))
	}
}

func describeFilter(f quest.Filter) string {
	var parts []string
	if f.Difficulty != "" {
		parts = append(parts, "difficulty="+string(f.Difficulty))
	}
	if f.MaxDuration > 0 {
		parts = append(parts, "max-duration="+num(f.MaxDuration))
	}
	if f.Tag != "" {
		parts = append(parts, "tag="+f.Tag)
	}
	return strings.Join(parts, ", ")
}

func renderDetail(w io.Writer, q quest.Quest) {
	fmt.Fprintf(w, "%s\n%s\n\n", q.Title, strings.Repeat("=", len(q.Title)))
	fmt.Fprintf(w, "%s\n\n", q.Narrative)

	fmt.Fprintln(w, "Objectives:")
	for _, o := range q.Objectives {
		fmt.Fprintf(w, "  [ ] %s (%s %s, +%s XP)\n", o.Description, num(o.Target), o.Metric, num(o.XPReward))
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Difficulty:\t%s\n", q.Difficulty)
	fmt.Fprintf(tw, "Duration:\t%s min\n", num(q.EstimatedDuration))
	fmt.Fprintf(tw, "Rewards:\t%s XP, %s coins\n", num(q.TotalXP), num(q.CoinReward))
	if len(q.Tags) > 0 {
		fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(q.Tags, ", "))
	}
	if where := describeLocation(q.Location); where != "" {
		fmt.Fprintf(tw, "Location:\t%s\n", where)
	}
	fmt.Fprintf(tw, "Generated:\t%s\n", q.GeneratedAt)
	fmt.Fprintf(tw, "Quest ID:\t%s\n", q.QuestID)
	_ = tw.Flush()
}

func describeLocation(loc *quest.Location) string {
	if loc == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{loc.Neighborhood, loc.City, loc.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	s := strings.Join(parts, ", ")
	if loc.Landmark != "" {
		s = strings.TrimSpace(s + " (near " + loc.Landmark + ")")
	}
	return s
}

// renderError frames err as a panel. API errors get a heading and a retry
// hint; anything else is a usage problem.
func renderError(w io.Writer, err error) {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	lines := []string{apiErr.Message}
	if apiErr.ServerMessage != "" && apiErr.ServerMessage != apiErr.Message {
		lines = append(lines, "Server: "+apiErr.ServerMessage)
	}
	for _, d := range apiErr.Details {
		path := d.Path
		if path == "" {
			path = "(body)"
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", path, d.Message))
	}

	fmt.Fprintf(w, "+- %s\n", apiErr.Title())
	for _, l := range lines {
		fmt.Fprintf(w, "| %s\n", l)
	}
	if apiErr.Retryable() {
		fmt.Fprintln(w, "+- Run the command again to retry.")
	} else {
		fmt.Fprintln(w, "+- Fix the input and try again.")
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
