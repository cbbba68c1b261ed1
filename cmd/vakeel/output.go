package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/verdict"
)

const rule = "──────────────────────────────────────────────────"

func printComplianceReport(w io.Writer, report models.ComplianceReport) {
	if len(report) == 0 {
		fmt.Fprintln(w, "No clauses were returned.")
		return
	}

	fmt.Fprintln(w, "Compliance Report")
	fmt.Fprintln(w, rule)
	for _, key := range report.Keys() {
		check := report[key]
		mark := "OK "
		if check.Violation() {
			mark = "!! "
		}
		fmt.Fprintf(w, "%s%s\n", mark, key)
		fmt.Fprintf(w, "   Clause:     %s\n", check.Clause)
		fmt.Fprintf(w, "   Legal Rule: %s\n", check.LegalRule)
		fmt.Fprintf(w, "   Reason:     %s\n", check.Reason)
		fmt.Fprintf(w, "   Violates:   %s\n", check.Violates)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%d of %d clauses violate the law\n", report.Violations(), len(report))
}

func printRiskAnalysis(w io.Writer, analysis *models.RiskAnalysis) {
	fmt.Fprintln(w, "Good Clauses")
	fmt.Fprintln(w, rule)
	for _, c := range analysis.GoodClauses {
		fmt.Fprintf(w, "  + %s\n", c.Clause)
		if c.Reason != "" {
			fmt.Fprintf(w, "    %s\n", c.Reason)
		}
	}

	fmt.Fprintln(w, "\nRisky Clauses")
	fmt.Fprintln(w, rule)
	for _, c := range analysis.RiskClauses {
		fmt.Fprintf(w, "  - %s\n", c.Clause)
		if c.Risk != "" {
			fmt.Fprintf(w, "    Risk: %s\n", c.Risk)
		}
	}

	fmt.Fprintln(w, "\nRecommendations")
	fmt.Fprintln(w, rule)
	for _, r := range analysis.Recommendations {
		fmt.Fprintf(w, "  * %s\n", r.Clause)
		if r.Reason != "" {
			fmt.Fprintf(w, "    Why: %s\n", r.Reason)
		}
		fmt.Fprintf(w, "    Suggested: %s\n", r.SuggestedRewrite)
	}
}

func printNegotiation(w io.Writer, n *models.Negotiation) {
	fmt.Fprintf(w, "Negotiation %s (%s)\n", n.ID, n.Status)
	fmt.Fprintln(w, rule)
	if len(n.Messages) == 0 {
		fmt.Fprintln(w, "No messages")
	}
	for _, m := range n.Messages {
		fmt.Fprintf(w, "%s: %s\n", m.Speaker, m.Body())
	}
	if !n.Completed() {
		fmt.Fprintf(w, "\nNext speaker: %s\n", n.NextSpeaker())
	}
}

func printHistory(w io.Writer, history []*models.Negotiation) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No negotiations found.")
		return
	}

	fmt.Fprintln(w, "Negotiation History")
	fmt.Fprintln(w, rule)
	for _, n := range history {
		verdictMark := ""
		if n.Verdict != nil {
			verdictMark = " [verdict]"
		}
		fmt.Fprintf(w, "  %s  %-9s %2d messages%s  %s\n", n.ID, n.Status, len(n.Messages), verdictMark, n.Topic())
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total: %d negotiations\n", len(history))
}

// printVerdict renders the final poll state. A failed load is returned as
// an error so the command exits non-zero.
func printVerdict(w io.Writer, snap verdict.Snapshot) error {
	n := snap.Negotiation

	switch snap.View {
	case verdict.Failed:
		msg := "Could not retrieve data"
		if snap.Err != nil {
			msg = snap.Err.Error()
		}
		return errors.New("Error loading negotiation: " + msg)
	case verdict.CompletedPending, verdict.Loading:
		fmt.Fprintln(w, "The negotiation is complete, but the verdict is still being processed.")
	case verdict.InProgress:
		fmt.Fprintln(w, "This negotiation is not completed yet. The AI will generate a verdict after 10 messages.")
		fmt.Fprintf(w, "Messages so far: %d\n", len(n.Messages))
	case verdict.Ready:
		summary := strings.TrimSpace(n.Verdict.Summary)
		if summary == "" {
			summary = "No summary provided."
		}
		compromise := strings.TrimSpace(n.Verdict.Compromise)
		if compromise == "" {
			compromise = "No compromise proposal provided."
		}
		fmt.Fprintln(w, "AI Verdict")
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Summary\n%s\n\n", summary)
		fmt.Fprintf(w, "Compromise Proposal\n%s\n", compromise)
	}
	return nil
}
