package commands

import (
	"vlrscraper/internal/entities"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playerCmd, teamCmd, historyCmd, matchCmd)
}

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Prints a player.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := entities.ParseID(args[0])
		if err != nil {
			return err
		}
		player, err := scraper.Player(cmd.Context(), id)
		if err != nil {
			return err
		}
		renderPlayer(cmd.OutOrStdout(), *player)
		return nil
	},
}

var teamCmd = &cobra.Command{
	Use:   "team <id>",
	Short: "Prints a team and its roster.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := entities.ParseID(args[0])
		if err != nil {
			return err
		}
		team, err := scraper.Team(cmd.Context(), id)
		if err != nil {
			return err
		}
		renderRoster(cmd.OutOrStdout(), *team)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <player-id>",
	Short: "Prints every team a player has played for.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := entities.ParseID(args[0])
		if err != nil {
			return err
		}
		teams, err := scraper.TeamHistory(cmd.Context(), id)
		if err != nil {
			return err
		}
		renderTeams(cmd.OutOrStdout(), teams)
		return nil
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <id>",
	Short: "Prints the stats of a match.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := entities.ParseID(args[0])
		if err != nil {
			return err
		}
		match, err := scraper.Match(cmd.Context(), id)
		if err != nil {
			return err
		}
		renderMatchStats(cmd.OutOrStdout(), *match)
		return nil
	},
}
