package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"creatoriq/internal/intelligence"
	"creatoriq/internal/store"
	"creatoriq/internal/topics"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh video intelligence and creator topics",
	}
	syncCmd.AddCommand(newSyncVideosCommand(ctx))
	syncCmd.AddCommand(newSyncTopicsCommand(ctx))
	return syncCmd
}

type syncResult struct {
	CreatorID string `json:"creatorId"`
	Kind      string `json:"kind"`
	Updated   int    `json:"updated"`
}

func newSyncVideosCommand(ctx *commandContext) *cobra.Command {
	var creatorID, inputPath string

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Extract intelligence for new or changed videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("creator", creatorID); err != nil {
				return err
			}
			if err := requireFlag("input", inputPath); err != nil {
				return err
			}
			rows, err := loadTranscriptRows(inputPath)
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			client, err := ctx.extractionClient(cmd.Context(), logger)
			if err != nil {
				return err
			}

			return ctx.withStore(func(st *store.Store) error {
				syncer := intelligence.NewSyncer(st, client, logger, ctx.intelligenceOptions())
				updated, err := syncer.Sync(cmd.Context(), creatorID, rows)
				if err != nil {
					return err
				}
				return printSyncResult(ctx, cmd, syncResult{CreatorID: creatorID, Kind: "videos", Updated: updated})
			})
		},
	}

	cmd.Flags().StringVar(&creatorID, "creator", "", "Creator id")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Transcript rows (JSON array, JSON Lines, or YAML)")
	return cmd
}

func newSyncTopicsCommand(ctx *commandContext) *cobra.Command {
	var creatorID, displayName string

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Rebuild the creator's topic graph from stored intelligence",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("creator", creatorID); err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			client, err := ctx.extractionClient(cmd.Context(), logger)
			if err != nil {
				return err
			}
			locker, err := ctx.locker()
			if err != nil {
				return err
			}

			return ctx.withStore(func(st *store.Store) error {
				syncer := topics.NewSyncer(st, client, locker, logger, ctx.config.ClusterTimeout())
				count, err := syncer.Sync(cmd.Context(), creatorID, displayName)
				if err != nil {
					return err
				}
				return printSyncResult(ctx, cmd, syncResult{CreatorID: creatorID, Kind: "topics", Updated: count})
			})
		},
	}

	cmd.Flags().StringVar(&creatorID, "creator", "", "Creator id")
	cmd.Flags().StringVar(&displayName, "name", "", "Creator display name used in prompts")
	return cmd
}

func printSyncResult(ctx *commandContext, cmd *cobra.Command, result syncResult) error {
	if ctx.useJSON(cmd) {
		return writeJSON(cmd, result)
	}
	switch result.Kind {
	case "topics":
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d topics for %s\n", result.Updated, result.CreatorID)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d video records for %s\n", result.Updated, result.CreatorID)
	}
	return nil
}

