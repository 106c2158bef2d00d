package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the GitHub repository releases are published to.
const githubRepoSlug = "render-tools/renderctl"

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update renderctl to the latest released version",
		Long: `Checks for the latest release of renderctl on GitHub and, if a newer
version is available, downloads it and replaces the current binary in place.`,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	version := rootCmd.Version
	if version == "" || version == "dev" {
		return fmt.Errorf("cannot self-update a development version; install a released build first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", githubRepoSlug)
	}
	if latest.LessOrEqual(version) {
		fmt.Printf("renderctl %s is already the latest version\n", version)
		return nil
	}

	fmt.Printf("Updating from %s to %s...\n", version, latest.Version())
	if _, err := selfupdate.UpdateSelf(ctx, version, selfupdate.ParseSlug(githubRepoSlug)); err != nil {
		return fmt.Errorf("updating binary: %w", err)
	}

	fmt.Printf("Successfully updated to %s\n", latest.Version())
	return nil
}
