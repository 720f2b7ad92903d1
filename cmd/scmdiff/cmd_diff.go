package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunvs/scmdiff/pkg/diff"
)

func newDiffCmd() *cobra.Command {
	var showErrors bool
	var stat bool

	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two trees reachable from two commits",
		Long: `Compare the trees rooted at two commits, classifying every differing path
as added, modified, removed, or ignored. Each argument may be "HEAD", a
branch name, or a raw object hash.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			left, err := resolveCommitish(repo, args[0])
			if err != nil {
				return err
			}
			right, err := resolveCommitish(repo, args[1])
			if err != nil {
				return err
			}

			typed, err := loadRepoConfig(context.Background(), repo)
			if err != nil {
				return err
			}

			diffCtx, _, err := buildDiffContext(repo, typed, right)
			if err != nil {
				return err
			}

			rootStack, err := rootIgnoreStack(typed)
			if err != nil {
				return err
			}

			status, err := diff.DiffCommits(context.Background(), diffCtx, left, right, rootStack)
			if err != nil {
				return fmt.Errorf("diff failed: %w", err)
			}

			if stat {
				renderStat(status)
			} else {
				renderStatus(status, showErrors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showErrors, "errors", false, "Show a table of subtree errors encountered")
	cmd.Flags().BoolVar(&stat, "stat", false, "Show a per-status count summary instead of the full path list")

	return cmd
}
