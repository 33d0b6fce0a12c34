package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/quality"
	"creatoriq/internal/store"
)

func newQualityCommand(ctx *commandContext) *cobra.Command {
	qualityCmd := &cobra.Command{
		Use:   "quality",
		Short: "Evaluate product artifacts against the quality gates",
	}
	qualityCmd.AddCommand(newQualityEvaluateCommand(ctx))
	qualityCmd.AddCommand(newQualityHistoryCommand(ctx))
	return qualityCmd
}

type evaluateOptions struct {
	creatorID   string
	htmlPath    string
	productType string
	sources     []string
	brandPath   string
	handle      string
	catalogDir  string
	weights     []string
	save        bool
	artifactID  string
	feedback    bool
}

type evaluateResult struct {
	CreatorID    string             `json:"creatorId,omitempty"`
	ArtifactID   string             `json:"artifactId,omitempty"`
	ProductType  string             `json:"productType"`
	EvaluationID int64              `json:"evaluationId,omitempty"`
	Evaluation   quality.Evaluation `json:"evaluation"`
	Feedback     string             `json:"feedback,omitempty"`
}

func newQualityEvaluateCommand(ctx *commandContext) *cobra.Command {
	var opts evaluateOptions

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score an HTML artifact and optionally record the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("html", opts.htmlPath); err != nil {
				return err
			}
			if opts.save {
				if err := requireFlag("creator", opts.creatorID); err != nil {
					return err
				}
				if err := requireFlag("artifact-id", opts.artifactID); err != nil {
					return err
				}
			}
			markup, err := os.ReadFile(opts.htmlPath)
			if err != nil {
				return fmt.Errorf("read artifact html: %w", err)
			}
			brand, err := loadBrand(opts.brandPath)
			if err != nil {
				return err
			}
			handle := strings.TrimSpace(opts.handle)
			if handle == "" {
				handle = brand.Handle
			}
			catalog, err := loadCatalogDir(opts.catalogDir)
			if err != nil {
				return err
			}
			weights, err := mergeWeights(ctx.config.QualityWeights(), opts.weights)
			if err != nil {
				return err
			}
			// Unknown product types are scored as pdf_guide by the engine,
			// which notes the substitution.
			productType := knowledge.ProductType(strings.ToLower(strings.TrimSpace(opts.productType)))

			return ctx.withStore(func(st *store.Store) error {
				if opts.creatorID != "" {
					stored, err := st.ListArtifactHTML(cmd.Context(), opts.creatorID, opts.artifactID)
					if err != nil {
						return fmt.Errorf("load artifact catalog: %w", err)
					}
					catalog = append(catalog, stored...)
				}

				engine := quality.NewEngine(ctx.config.QualityOptions())
				evaluation := engine.Evaluate(quality.Input{
					HTML:           string(markup),
					ProductType:    productType,
					SourceVideoIDs: opts.sources,
					CatalogHTML:    catalog,
					Brand:          brand.BrandTokens,
					CreatorHandle:  handle,
					Weights:        weights,
				})

				result := evaluateResult{
					CreatorID:   opts.creatorID,
					ArtifactID:  opts.artifactID,
					ProductType: string(productType),
					Evaluation:  evaluation,
				}
				if opts.feedback {
					result.Feedback = quality.BuildFeedbackForPrompt(evaluation)
				}
				if opts.save {
					if err := st.SaveArtifact(cmd.Context(), store.Artifact{
						CreatorID:   opts.creatorID,
						ArtifactID:  opts.artifactID,
						ProductType: productType,
						HTML:        string(markup),
					}); err != nil {
						return err
					}
					id, err := st.SaveQualityEvaluation(cmd.Context(), opts.creatorID, opts.artifactID, productType, evaluation)
					if err != nil {
						return err
					}
					result.EvaluationID = id
				}
				return printEvaluation(ctx, cmd, result)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.creatorID, "creator", "", "Creator id (adds stored artifacts to the catalog)")
	flags.StringVar(&opts.htmlPath, "html", "", "Artifact HTML file")
	flags.StringVarP(&opts.productType, "product-type", "t", string(knowledge.DefaultProductType), "Product type")
	flags.StringSliceVar(&opts.sources, "source", nil, "Source video ids the artifact must cite")
	flags.StringVar(&opts.brandPath, "brand", "", "Brand kit YAML (primaryColor, secondaryColor, fontFamily, handle)")
	flags.StringVar(&opts.handle, "handle", "", "Creator handle expected in the markup")
	flags.StringVar(&opts.catalogDir, "catalog", "", "Directory of prior artifact HTML files")
	flags.StringArrayVar(&opts.weights, "weight", nil, "Gate weight override as gate=value (repeatable)")
	flags.BoolVar(&opts.save, "save", false, "Store the artifact and its evaluation")
	flags.StringVar(&opts.artifactID, "artifact-id", "", "Artifact id for --save and catalog exclusion")
	flags.BoolVar(&opts.feedback, "feedback", false, "Include remediation feedback for regeneration prompts")
	return cmd
}

// mergeWeights layers --weight gate=value flags over the configured
// override. Normalization happens in the engine.
func mergeWeights(base quality.Weights, flags []string) (quality.Weights, error) {
	out := make(quality.Weights, len(base)+len(flags))
	for key, value := range base {
		out[key] = value
	}
	for _, flag := range flags {
		name, raw, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --weight %q (expected gate=value)", flag)
		}
		gate, ok := quality.ParseGateKey(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown quality gate %q", name)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("invalid weight for %s: %q", gate, raw)
		}
		out[gate] = value
	}
	return out, nil
}

func printEvaluation(ctx *commandContext, cmd *cobra.Command, result evaluateResult) error {
	if ctx.useJSON(cmd) {
		return writeJSON(cmd, result)
	}
	out := cmd.OutOrStdout()
	eval := result.Evaluation
	rows := make([][]string, 0, len(eval.Gates))
	for _, gate := range eval.Gates {
		rows = append(rows, []string{
			gate.Label,
			strconv.Itoa(gate.Score),
			strconv.Itoa(gate.Threshold),
			yesNo(gate.Passed),
			strings.Join(gate.Notes, " "),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Gate", "Score", "Threshold", "Passed", "Notes"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	))
	fmt.Fprintf(out, "Overall: %d (passed: %s, words: %d, max similarity: %.2f)\n",
		eval.OverallScore, yesNo(eval.OverallPassed), eval.WordCount, eval.MaxCatalogSimilarity)
	if result.EvaluationID > 0 {
		fmt.Fprintf(out, "Recorded evaluation %d for %s/%s\n", result.EvaluationID, result.CreatorID, result.ArtifactID)
	}
	if result.Feedback != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, result.Feedback)
	}
	return nil
}

func newQualityHistoryCommand(ctx *commandContext) *cobra.Command {
	var creatorID string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded evaluations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("creator", creatorID); err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				records, err := st.ListQualityEvaluations(cmd.Context(), creatorID, limit)
				if err != nil {
					return fmt.Errorf("list quality evaluations: %w", err)
				}
				if ctx.useJSON(cmd) {
					if records == nil {
						records = []store.QualityRecord{}
					}
					return writeJSON(cmd, records)
				}
				if len(records) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No evaluations recorded for %s\n", creatorID)
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					failing := make([]string, 0, len(rec.FailingGates))
					for _, gate := range rec.FailingGates {
						failing = append(failing, gate.Label())
					}
					rows = append(rows, []string{
						strconv.FormatInt(rec.ID, 10),
						rec.ArtifactID,
						humanLabel(rec.ProductType),
						strconv.Itoa(rec.OverallScore),
						yesNo(rec.OverallPassed),
						strings.Join(failing, ", "),
						rec.CreatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Artifact", "Type", "Score", "Passed", "Failing", "Recorded"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&creatorID, "creator", "", "Creator id")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum evaluations to show (0 for all)")
	return cmd
}
