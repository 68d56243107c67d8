package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/lumina"
	"github.com/aretw0/lumina/internal/presentation/tui"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Run AI-assisted operations against the configured service",
}

// dataset is the input of the row-based operations: one collection and its
// documents, as JSON or YAML.
type dataset struct {
	Collection domain.Collection         `json:"collection" yaml:"collection"`
	Documents  []domain.Document         `json:"documents" yaml:"documents"`
	Context    *domain.ConstraintContext `json:"context,omitempty" yaml:"context,omitempty"`
}

func loadDataset(cmd *cobra.Command) (dataset, error) {
	var ds dataset
	path, _ := cmd.Flags().GetString("data")
	if path == "" {
		return ds, fmt.Errorf("--data is required")
	}
	data, err := readInput(cmd, path)
	if err != nil {
		return ds, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &ds)
	} else {
		err = json.Unmarshal(data, &ds)
	}
	if err != nil {
		return ds, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	return ds, nil
}

func (ds dataset) constraintContext() domain.ConstraintContext {
	if ds.Context != nil {
		return *ds.Context
	}
	return constraintContext()
}

func (ds dataset) attribute(cmd *cobra.Command) (domain.Attribute, error) {
	id, _ := cmd.Flags().GetString("attribute")
	attr, ok := ds.Collection.FindAttribute(id)
	if !ok {
		return domain.Attribute{}, fmt.Errorf("attribute %q not found in collection %q", id, ds.Collection.Name)
	}
	return attr, nil
}

// withAssistant builds an Assistant for one command invocation and closes it
// once fn returns.
func withAssistant(cmd *cobra.Command, fn func(ctx context.Context, a *lumina.Assistant, p *tui.Presenter) error) error {
	logger := newLogger()
	service, err := newService(logger)
	if err != nil {
		return err
	}
	notifier, _, closeNotifier, err := newNotifier(logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	noColor, _ := cmd.Flags().GetBool("no-color")
	var popts []tui.Option
	if noColor {
		popts = append(popts, tui.WithNoColor())
	}
	p := tui.New(cmd.OutOrStdout(), popts...)

	ctx := cmd.Context()
	a := lumina.New(service, assistantOptions(logger, notifier)...)
	defer a.Close(ctx)
	return fn(ctx, a, p)
}

// report prints the outcome of a request. A failed request is an error of
// the command.
func report[Res any](p *tui.Presenter, kind domain.OperationKind, r domain.Result[Res]) (Res, error) {
	res, ok := r.Value()
	if !ok {
		return res, fmt.Errorf("%s", p.Failure(kind, r.Message()))
	}
	return res, p.Print(tui.ResultMarkdown(res))
}

var aiTablesCmd = &cobra.Command{
	Use:   "tables <description>",
	Short: "Suggest collections for a project description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		previous, _ := cmd.Flags().GetString("previous")
		return withAssistant(cmd, func(ctx context.Context, a *lumina.Assistant, p *tui.Presenter) error {
			r, err := a.Tables().Do(ctx, domain.TableRequest{
				TablesDescription:    strings.Join(args, " "),
				OldAITablesGenerated: previous,
			})
			if err != nil {
				return err
			}
			_, err = report(p, domain.OpTableSuggestion, r)
			return err
		})
	},
}

var aiWriteCmd = &cobra.Command{
	Use:   "write <text>",
	Short: "Expand (or with --contract, shorten) a text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contract, _ := cmd.Flags().GetBool("contract")
		showDiff, _ := cmd.Flags().GetBool("diff")
		return withAssistant(cmd, func(ctx context.Context, a *lumina.Assistant, p *tui.Presenter) error {
			direction := domain.WritingExpand
			if contract {
				direction = domain.WritingContract
			}
			e := a.Editor(strings.Join(args, " "))
			if err := e.Complete(ctx, e.Begin(ctx, direction)); err != nil {
				return fmt.Errorf("%s", p.Failure(domain.OpAssistedWriting, err.Error()))
			}
			if err := p.Print(e.Content()); err != nil {
				return err
			}
			if showDiff {
				fmt.Fprintln(cmd.OutOrStdout(), e.DiffText(direction))
			}
			return nil
		})
	},
}

var aiTemplatesCmd = &cobra.Command{
	Use:   "templates <description>",
	Short: "Suggest templates matching a project description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssistant(cmd, func(ctx context.Context, a *lumina.Assistant, p *tui.Presenter) error {
			r, err := a.Templates().Do(ctx, domain.TemplateSuggestionRequest{ProjectDescription: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			_, err = report(p, domain.OpTemplateSuggestion, r)
			return err
		})
	},
}

var aiDeleteCmd = &cobra.Command{
	Use:   "delete <description>",
	Short: "Find the rows of a dataset matching a deletion request",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		return withAssistant(cmd, func(ctx context.Context, a *lumina.Assistant, p *tui.Presenter) error {
			req, table := lumina.MassDeleteRequest(strings.Join(args, " "), ds.Collection, ds.Documents, ds.constraintContext())
			r, err := a.MassDelete().Do(ctx, req)
			if err != nil {
				return err
			}
			res, err := report(p, domain.OpMassDelete, r)
			if err != nil || len(res.IDsToBeDeleted) == 0 {
				return err
			}
			out := cmd.OutOrStdout()
			matched := table.Filter(res.IDsToBeDeleted)
			fmt.Fprintln(out, matched.Header())
			for _, line := range matched.Lines() {
				fmt.Fprintln(out, line)
			}
			return nil
		})
	},
}

var aiCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Find suspicious values in one attribute of a dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		attr, err := ds.attribute(cmd)
		if err != nil {
			return err
		}
		return withAssistant(cmd, func(ctx context.Context, a *lumina.Assistant, p *tui.Presenter) error {
			req, values := lumina.CheckDataRequest(attr, ds.Documents, ds.constraintContext())
			r, err := a.CheckData().Do(ctx, req)
			if err != nil {
				return err
			}
			res, err := report(p, domain.OpCheckData, r)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range values.Resolve(res.InvalidData) {
				fmt.Fprintf(out, "%s\t%s\n", v.Value, strings.Join(v.IDs, ","))
			}
			return nil
		})
	},
}

var aiSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a data type for one attribute of a dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		attr, err := ds.attribute(cmd)
		if err != nil {
			return err
		}
		return withAssistant(cmd, func(ctx context.Context, a *lumina.Assistant, p *tui.Presenter) error {
			r, err := a.DataType().Do(ctx, lumina.SuggestDataTypeRequest(attr, ds.Documents, ds.constraintContext()))
			if err != nil {
				return err
			}
			_, err = report(p, domain.OpSuggestDataType, r)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(aiCmd)
	aiCmd.PersistentFlags().Bool("no-color", false, "Disable colors and markdown styling")

	aiTablesCmd.Flags().String("previous", "", "Previously generated tables to refine")
	aiWriteCmd.Flags().Bool("contract", false, "Shorten the text instead of expanding it")
	aiWriteCmd.Flags().Bool("diff", false, "Print a word diff against the original text")
	for _, c := range []*cobra.Command{aiDeleteCmd, aiCheckCmd, aiSuggestCmd} {
		c.Flags().String("data", "", "Dataset file (JSON or YAML) with a collection and its documents")
	}
	for _, c := range []*cobra.Command{aiCheckCmd, aiSuggestCmd} {
		c.Flags().String("attribute", "", "Attribute id")
		_ = c.MarkFlagRequired("attribute")
	}

	aiCmd.AddCommand(aiTablesCmd, aiWriteCmd, aiTemplatesCmd, aiDeleteCmd, aiCheckCmd, aiSuggestCmd)
}
