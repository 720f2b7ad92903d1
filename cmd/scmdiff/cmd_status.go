package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunvs/scmdiff/pkg/diff"
)

func newStatusCmd() *cobra.Command {
	var showErrors bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what changed between HEAD's parent and HEAD",
		Long: `Show the tree-level differences introduced by the current HEAD commit.
This is sugar for "diff <parent-of-HEAD> HEAD"; it does not inspect a live
working copy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			left, err := headParentCommitish(repo)
			if err != nil {
				return err
			}
			right, err := resolveCommitish(repo, "HEAD")
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
				return fmt.Errorf("status failed: %w", err)
			}

			renderStatus(status, showErrors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showErrors, "errors", false, "Show a table of subtree errors encountered")

	return cmd
}
