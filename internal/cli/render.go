package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"fjacquet/paycheck-planner/internal/currencyutils"
	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/registry"

	"github.com/shopspring/decimal"
)

// RenderResult writes a parse result as a table followed by its suggestions.
func RenderResult(w io.Writer, result models.ParseResult, reg *registry.Registry, lowConfidence int) error {
	var b strings.Builder

	b.WriteString(FormatTitle("Budget plan") + "\n")
	if result.HasIncome() {
		fmt.Fprintf(&b, "Income: %s\n", currencyutils.FormatDollars(result.Income))
	} else {
		b.WriteString(SubtleStyle.Render("Income: not found") + "\n")
	}
	b.WriteString("\n")

	if len(result.Allocations) == 0 {
		b.WriteString(SubtleStyle.Render("No allocations found.") + "\n")
	} else {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", HeaderStyle.Render("Category"), HeaderStyle.Render("Amount"), HeaderStyle.Render("Share"))
		for _, id := range result.Allocations.IDs() {
			amount := result.Allocations[id]
			share := "-"
			if result.HasIncome() {
				share = currencyutils.FormatPercent(currencyutils.ShareOf(amount, result.Income))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", label(reg, id), currencyutils.FormatDollars(amount), share)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", "Total", currencyutils.FormatDollars(result.Allocations.Sum()))
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write allocation table: %w", err)
		}
	}
	b.WriteString("\n")

	confidence := fmt.Sprintf("Confidence: %d/100", result.Confidence)
	if result.NeedsReview(lowConfidence) {
		b.WriteString(FormatWarning(confidence+" (please review)") + "\n")
	} else {
		b.WriteString(FormatSuccess(confidence) + "\n")
	}

	for _, s := range result.Suggestions {
		b.WriteString(SubtleStyle.Render(IdeaIcon+" "+s) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderBreakdown writes the typical split of income, largest share first.
func RenderBreakdown(w io.Writer, income decimal.Decimal, breakdown map[string]models.CategoryBreakdown, reg *registry.Registry) error {
	var b strings.Builder
	b.WriteString(FormatTitle("Typical breakdown of "+currencyutils.FormatDollars(income)) + "\n\n")

	if len(breakdown) == 0 {
		b.WriteString(SubtleStyle.Render("Not enough history yet. Accept a few plans first.") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	ids := make([]string, 0, len(breakdown))
	for id := range breakdown {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := breakdown[ids[i]].Percentage, breakdown[ids[j]].Percentage
		if !pi.Equal(pj) {
			return pi.GreaterThan(pj)
		}
		return ids[i] < ids[j]
	})

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", HeaderStyle.Render("Category"), HeaderStyle.Render("Amount"),
		HeaderStyle.Render("Share"), HeaderStyle.Render("Confidence"))
	for _, id := range ids {
		c := breakdown[id]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d (%d plans)\n", label(reg, id), currencyutils.FormatDollars(c.Amount),
			currencyutils.FormatPercent(c.Percentage), c.ConfidenceScore, c.SampleCount)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write breakdown table: %w", err)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary writes what has been learned for a user.
func RenderSummary(w io.Writer, summary models.LearningSummary) error {
	var b strings.Builder
	b.WriteString(FormatTitle("Learned habits for "+summary.UserID) + "\n")
	fmt.Fprintf(&b, "%d accepted plans, state version %d\n\n", summary.HistorySize, summary.Version)

	if len(summary.Categories) == 0 {
		b.WriteString(SubtleStyle.Render("Nothing learned yet.") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", HeaderStyle.Render("Category"), HeaderStyle.Render("Uses"),
		HeaderStyle.Render("Mean"), HeaderStyle.Render("Median"), HeaderStyle.Render("Share"))
	for _, c := range summary.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", c.Label, c.UseCount,
			currencyutils.FormatDollars(c.Stats.MeanAmount), currencyutils.FormatDollars(c.Stats.MedianAmount),
			currencyutils.FormatPercent(c.Stats.MeanPercentage))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write summary table: %w", err)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func label(reg *registry.Registry, id string) string {
	if reg != nil {
		if def, ok := reg.Lookup(id); ok {
			return def.DisplayName()
		}
	}
	return id
}
