package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/store"
	"creatoriq/internal/topics"
)

func newTopicsCommand(ctx *commandContext) *cobra.Command {
	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "Inspect and rank creator topics",
	}
	topicsCmd.AddCommand(newTopicsListCommand(ctx))
	topicsCmd.AddCommand(newTopicsRankCommand(ctx))
	return topicsCmd
}

func newTopicsListCommand(ctx *commandContext) *cobra.Command {
	var creatorID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the creator's current topic nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("creator", creatorID); err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				nodes, err := st.ListTopics(cmd.Context(), creatorID)
				if err != nil {
					return fmt.Errorf("list topics: %w", err)
				}
				if ctx.useJSON(cmd) {
					if nodes == nil {
						nodes = []knowledge.TopicNode{}
					}
					return writeJSON(cmd, nodes)
				}
				if len(nodes) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No topics stored for %s; run `creatoriq sync topics` first\n", creatorID)
					return nil
				}
				rows := make([][]string, 0, len(nodes))
				for _, node := range nodes {
					rows = append(rows, []string{
						node.TopicKey,
						node.TopicLabel,
						strconv.Itoa(len(node.SupportingVideoIDs)),
						strconv.FormatFloat(node.Confidence, 'f', 2, 64),
						productTypeLabels(node.RecommendedProductTypes),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Key", "Topic", "Videos", "Confidence", "Products"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&creatorID, "creator", "", "Creator id")
	return cmd
}

func newTopicsRankCommand(ctx *commandContext) *cobra.Command {
	var creatorID, productType string

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank topic suggestions for a product type",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("creator", creatorID); err != nil {
				return err
			}
			pt, err := parseProductTypeFlag(productType)
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				suggestions, err := topics.LoadRanked(cmd.Context(), st, creatorID, pt)
				if err != nil {
					return err
				}
				if ctx.useJSON(cmd) {
					return writeJSON(cmd, suggestions)
				}
				if len(suggestions) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No topic suggestions for %s\n", creatorID)
					return nil
				}
				rows := make([][]string, 0, len(suggestions))
				for i, s := range suggestions {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						s.Topic,
						strconv.Itoa(s.VideoCount),
						s.Problem,
						s.Promise,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Topic suggestions for %s (%s)\n", creatorID, humanLabel(string(pt)))
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "Topic", "Videos", "Problem", "Promise"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&creatorID, "creator", "", "Creator id")
	cmd.Flags().StringVarP(&productType, "product-type", "t", string(knowledge.DefaultProductType), "Product type (pdf_guide, mini_course, challenge_7day, checklist_toolkit)")
	return cmd
}

func parseProductTypeFlag(value string) (knowledge.ProductType, error) {
	pt, ok := knowledge.ParseProductType(value)
	if !ok {
		names := make([]string, 0, 4)
		for _, candidate := range knowledge.ProductTypes() {
			names = append(names, string(candidate))
		}
		return "", fmt.Errorf("unknown product type %q (expected one of %s)", value, strings.Join(names, ", "))
	}
	return pt, nil
}

func productTypeLabels(types []knowledge.ProductType) string {
	labels := make([]string, 0, len(types))
	for _, pt := range types {
		labels = append(labels, humanLabel(string(pt)))
	}
	return strings.Join(labels, ", ")
}
