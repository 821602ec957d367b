package commands

import (
	"errors"

	"vlrscraper/internal/entities"
	"vlrscraper/internal/scrapers/vlr"

	"github.com/spf13/cobra"
)

var (
	matchesPlayer int
	matchesTeam   int
	matchesDays   int
	matchesToDays int
	upcomingPage  int
)

func init() {
	flags := matchesCmd.Flags()
	flags.IntVar(&matchesPlayer, "player", 0, "List the matches of this player.")
	flags.IntVar(&matchesTeam, "team", 0, "List the matches of this team.")
	flags.IntVar(&matchesDays, "days", 30, "Start of the window, in days before today.")
	flags.IntVar(&matchesToDays, "to-days", 0, "End of the window, in days before today. Listing stops at the first full page without a match in the window, so a value older than the newest 50 matches lists nothing.")
	matchesCmd.MarkFlagsMutuallyExclusive("player", "team")
	matchesCmd.MarkFlagsOneRequired("player", "team")

	upcomingCmd.Flags().IntVar(&upcomingPage, "page", 1, "The page of the schedule to list.")

	rootCmd.AddCommand(matchesCmd, upcomingCmd)
}

// window is [now - days, now - toDays].
func window(days, toDays int) (vlr.Window, error) {
	if days < 0 || toDays < 0 || toDays > days {
		return vlr.Window{}, errors.New("expected 0 <= --to-days <= --days")
	}
	w := scraper.LastDays(days)
	w.To = w.To.AddDate(0, 0, -toDays)
	return w, nil
}

var matchesCmd = &cobra.Command{
	Use:   "matches (--player <id> | --team <id>) [--days 30] [--to-days 0]",
	Short: "Scrapes every match a player or team played in a window of time.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := window(matchesDays, matchesToDays)
		if err != nil {
			return err
		}

		var matches []entities.Match
		if matchesPlayer != 0 {
			matches, err = scraper.PlayerMatches(cmd.Context(), matchesPlayer, w)
		} else {
			matches, err = scraper.TeamMatches(cmd.Context(), matchesTeam, w)
		}
		if err != nil {
			return err
		}
		renderMatches(cmd.OutOrStdout(), matches)
		return nil
	},
}

var upcomingCmd = &cobra.Command{
	Use:   "upcoming [--page 1]",
	Short: "Lists upcoming matches.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := scraper.Upcoming(cmd.Context(), upcomingPage)
		if err != nil {
			return err
		}
		renderMatches(cmd.OutOrStdout(), matches)
		return nil
	},
}
