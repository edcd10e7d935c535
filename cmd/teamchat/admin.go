package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/server"
	"github.com/osa911/teamchat/internal/session"
)

// openServices connects to the configured store. Administration commands only read,
// so they run without a session.
func openServices(ctx context.Context) (*server.Services, error) {
	deps, err := server.NewDependencies(ctx, cfg)
	if err != nil {
		return nil, err
	}
	repos := server.NewRepositories(deps.Store, cfg.MembershipMode)
	return server.NewServices(cfg, repos, session.Static{}, deps.Pictures)
}

// withSpinner shows progress on stderr while fn runs
func withSpinner(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " " + message
	s.Start()
	err := fn()
	s.Stop()
	return err
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect user profiles",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of the user directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		services, err := openServices(cmd.Context())
		if err != nil {
			return err
		}

		var profiles []*models.Profile
		var total int
		err = withSpinner("Fetching users...", func() error {
			if profiles, err = services.User.FetchUsersWithPagination(cmd.Context(), page, perPage); err != nil {
				return err
			}
			total, err = services.User.FetchTotalUserCount(cmd.Context())
			return err
		})
		if err != nil {
			return err
		}

		renderProfiles(cmd.OutOrStdout(), profiles)
		fmt.Fprintf(cmd.OutOrStdout(), "Page %d, %d per page, %d users in total\n", page, perPage, total)
		return nil
	},
}

var usersSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find users whose username contains text, ignoring case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := openServices(cmd.Context())
		if err != nil {
			return err
		}

		var profiles []*models.Profile
		err = withSpinner("Searching users...", func() error {
			profiles, err = services.User.SearchUsers(cmd.Context(), args[0])
			return err
		})
		if err != nil {
			return err
		}
		renderProfiles(cmd.OutOrStdout(), profiles)
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <username>",
	Short: "Show the profile with the given username",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := openServices(cmd.Context())
		if err != nil {
			return err
		}

		var profile *models.Profile
		err = withSpinner("Looking up user...", func() error {
			profile, err = services.User.GetUserProfileByUsername(cmd.Context(), args[0])
			return err
		})
		if err != nil {
			return err
		}
		renderProfiles(cmd.OutOrStdout(), []*models.Profile{profile})
		return nil
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Inspect teams",
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams, optionally only those a user belongs to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		members, _ := cmd.Flags().GetStringSlice("member")

		services, err := openServices(cmd.Context())
		if err != nil {
			return err
		}

		var teams []*models.Team
		err = withSpinner("Fetching teams...", func() error {
			teams, err = services.Team.GetTeamsByUserUIDs(cmd.Context(), members)
			return err
		})
		if err != nil {
			return err
		}
		renderTeams(cmd.OutOrStdout(), teams)
		return nil
	},
}

var teamsMembersCmd = &cobra.Command{
	Use:   "members <team-uid>",
	Short: "List the members of a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := openServices(cmd.Context())
		if err != nil {
			return err
		}

		var members []string
		err = withSpinner("Fetching members...", func() error {
			members, err = services.Team.GetTeamMembers(cmd.Context(), args[0])
			return err
		})
		if err != nil {
			return err
		}
		for _, uid := range members {
			fmt.Fprintln(cmd.OutOrStdout(), uid)
		}
		return nil
	},
}

func renderProfiles(w io.Writer, profiles []*models.Profile) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"UID", "Username", "Name", "Email", "Created"})
	for _, p := range profiles {
		table.Append([]string{p.UID, p.Username, p.DisplayName, p.Email, p.CreatedOnFormatted})
	}
	table.Render()
}

func renderTeams(w io.Writer, teams []*models.Team) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"UID", "Name", "Owner", "Members"})
	for _, t := range teams {
		count := 0
		for _, member := range t.Members {
			if member {
				count++
			}
		}
		table.Append([]string{t.UID, t.Name, t.Owner, strconv.Itoa(count)})
	}
	table.Render()
}

func init() {
	usersListCmd.Flags().Int("page", 1, "Page number, starting at 1")
	usersListCmd.Flags().Int("per-page", 20, "Users per page")
	usersCmd.AddCommand(usersListCmd, usersSearchCmd, usersGetCmd)

	teamsListCmd.Flags().StringSlice("member", nil, "Only teams with this member uid (repeatable)")
	teamsCmd.AddCommand(teamsListCmd, teamsMembersCmd)
}
