package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor     bool `mapstructure:"no_color"`
	ShowAliases bool `mapstructure:"show_aliases"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
	return NewReporterTo(cfg, os.Stdout, logger), nil
}

// NewReporterTo writes to w and leaves the global color setting alone.
func NewReporterTo(cfg Config, w io.Writer, logger ports.Logger) *Reporter {
	return &Reporter{
		config: cfg,
		writer: w,
		logger: logger.WithFields(map[string]any{"component": "text_reporter"}),
	}
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

type palette struct {
	red, yellow, green, cyan, bold func(a ...interface{}) string
}

func newPalette(noColor bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if noColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		red:    mk(color.FgRed),
		yellow: mk(color.FgYellow),
		green:  mk(color.FgGreen),
		cyan:   mk(color.FgCyan),
		bold:   mk(color.Bold),
	}
}

func (r *Reporter) Report(ctx context.Context, board *domain.Board) error {
	if board == nil || len(board.Cards) == 0 {
		fmt.Fprintln(r.writer, "No resources found.")
		return nil
	}
	p := newPalette(r.config.NoColor)

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, p.bold("Infrastructure Board"))
	fmt.Fprintln(tw, "====================")
	fmt.Fprintf(tw, "Source:\t%s\n", board.Source)
	fmt.Fprintf(tw, "Fingerprint:\t%s\n", shortFingerprint(board.Fingerprint))
	fmt.Fprintf(tw, "Primary Region:\t%s\n", orDash(board.Deployment.PrimaryRegion))
	fmt.Fprintf(tw, "Availability Zones:\t%s\n", orDash(strings.Join(board.Deployment.AvailabilityZones, ", ")))
	if len(board.Deployment.ReplicaRegions) > 0 {
		fmt.Fprintf(tw, "Replica Regions:\t%s\n", strings.Join(board.Deployment.ReplicaRegions, ", "))
	}

	shown := make(map[string]bool, len(board.Cards))
	for _, env := range board.Environments {
		if err := ctx.Err(); err != nil {
			return err
		}
		groups, ok := board.Grouped.ByEnvironment.Get(env)
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "\n%s\n", p.cyan(fmt.Sprintf("Environment: %s", env)))
		fmt.Fprintln(tw, "State\tCategory\tResource\tType\tDeployment")
		fmt.Fprintln(tw, "-----\t--------\t--------\t----\t----------")
		for _, category := range groups.Order {
			resources, _ := groups.Get(category)
			for _, res := range resources {
				card, ok := board.Cards[res.ID]
				if !ok {
					r.logger.Warnf(ctx, "No card for grouped resource %s", res.ID)
					continue
				}
				shown[res.ID] = true
				r.row(tw, p, category, card)
			}
		}
	}

	var ungrouped []string
	for id := range board.Cards {
		if !shown[id] {
			ungrouped = append(ungrouped, id)
		}
	}
	if len(ungrouped) > 0 {
		sort.Strings(ungrouped)
		fmt.Fprintf(tw, "\n%s\n", p.cyan("Ungrouped"))
		fmt.Fprintln(tw, "State\tCategory\tResource\tType\tDeployment")
		fmt.Fprintln(tw, "-----\t--------\t--------\t----\t----------")
		for _, id := range ungrouped {
			card := board.Cards[id]
			r.row(tw, p, card.TaxonomyCategory, card)
		}
	}

	if len(board.Findings) > 0 {
		fmt.Fprintf(tw, "\n%s\n", p.bold("Findings:"))
		fmt.Fprintln(tw, "--------")
		findings := append([]domain.Finding(nil), board.Findings...)
		sort.SliceStable(findings, func(i, j int) bool {
			if findings[i].Severity != findings[j].Severity {
				return findings[i].Severity == domain.SeverityError
			}
			return findings[i].ElementID < findings[j].ElementID
		})
		for _, f := range findings {
			label := p.yellow("[WARN]")
			if f.Severity == domain.SeverityError {
				label = p.red("[ERROR]")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t(%s)\n", label, orDash(f.ElementID), f.Message, f.RuleID)
		}
	}

	// Cards outside the environment groupings still count, so the totals
	// match the Findings section.
	counts := make(map[domain.DisplayState]int)
	for _, card := range board.Cards {
		counts[card.DisplayState]++
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Resources:\t%d\n", len(board.Cards))
	fmt.Fprintf(tw, "Environments:\t%d\n", len(board.Environments))
	fmt.Fprintf(tw, "Categories:\t%d\n", board.Grouped.ByCategory.Len())
	fmt.Fprintf(tw, "Errors:\t%s\n", p.red(counts[domain.DisplayError]))
	fmt.Fprintf(tw, "Warnings:\t%s\n", p.yellow(counts[domain.DisplayWarning]))
	fmt.Fprintf(tw, "OK:\t%s\n", p.green(counts[domain.DisplayOk]))
	fmt.Fprintf(tw, "Unvalidated:\t%d\n", counts[domain.DisplayNeutral])

	if board.Cost != nil {
		r.costs(tw, p, board)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	r.logger.Debugf(ctx, "Text report generated for %d resources", len(board.Cards))
	return nil
}

func (r *Reporter) row(w io.Writer, p palette, category domain.Category, card domain.Card) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		r.state(p, card.DisplayState), category, card.Resource.ID, card.Resource.Type, card.Badge.Label)
	if r.config.ShowAliases {
		for _, alias := range card.Aliases {
			fmt.Fprintf(w, "\t\t  %s\t%s\t%s\n", alias.TerraformName, alias.AliasType, alias.AliasValue)
		}
	}
}

// costs lists priced resources from the most expensive down, followed by
// the per-scenario totals.
func (r *Reporter) costs(w io.Writer, p palette, board *domain.Board) {
	sum := board.Cost
	var priced []*domain.ResourceCost
	for _, card := range board.Cards {
		if card.Cost != nil {
			priced = append(priced, card.Cost)
		}
	}
	sort.Slice(priced, func(i, j int) bool {
		if priced[i].MonthlyCost != priced[j].MonthlyCost {
			return priced[i].MonthlyCost > priced[j].MonthlyCost
		}
		return priced[i].ResourceID < priced[j].ResourceID
	})

	fmt.Fprintf(w, "\n%s\n", p.bold(fmt.Sprintf("Cost Estimate (%s, %s, %s):", sum.StackType, sum.Scenario, sum.Region)))
	fmt.Fprintln(w, "-------------")
	for _, rc := range priced {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rc.ResourceID, money(rc.MonthlyCost, sum.Currency), rc.ResourceType)
		for _, s := range rc.Suggestions {
			fmt.Fprintf(w, "\t  %s\n", p.yellow(s))
		}
	}
	fmt.Fprintf(w, "Monthly:\t%s\n", p.bold(money(sum.TotalMonthly, sum.Currency)))
	fmt.Fprintf(w, "Annual:\t%s\n", money(sum.TotalAnnual, sum.Currency))
	for _, scenario := range domain.Scenarios() {
		fmt.Fprintf(w, "  %s:\t%s\n", scenario, money(sum.MonthlyByScenario[scenario], sum.Currency))
	}
	if sum.FreeTierEligible {
		fmt.Fprintln(w, p.green("Fits the AWS free tier when idle"))
	}
	for _, rec := range sum.Recommendations {
		fmt.Fprintf(w, "- %s\n", rec)
	}
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func (r *Reporter) state(p palette, s domain.DisplayState) string {
	switch s {
	case domain.DisplayError:
		return p.red("[ERROR]")
	case domain.DisplayWarning:
		return p.yellow("[WARN]")
	case domain.DisplayOk:
		return p.green("[OK]")
	default:
		return "[-]"
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return orDash(fp)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
