package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kamishino/design-tokens-sub001/contrast"
	"github.com/kamishino/design-tokens-sub001/resolve"
	"github.com/kamishino/design-tokens-sub001/rules"
	"github.com/kamishino/design-tokens-sub001/validate"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printBatch(batch *validate.BatchResult, jsonOut bool) {
	if jsonOut {
		printJSON(batch)
		return
	}

	for _, r := range batch.Results {
		if r.Valid && len(r.Warnings) == 0 {
			continue
		}
		if r.Valid {
			fmt.Printf("⚠ %s\n", r.Path)
		} else {
			fmt.Printf("✗ %s\n", r.Path)
		}
		for _, e := range r.Errors {
			fmt.Printf("    error   %s: %s\n", e.Code, e.Message)
			if e.Suggestion != "" {
				fmt.Printf("            suggestion: %s\n", e.Suggestion)
			}
		}
		for _, w := range r.Warnings {
			fmt.Printf("    warning %s: %s\n", w.Code, w.Message)
		}
	}

	s := batch.Summary
	fmt.Printf("\n%d token(s): %d valid, %d invalid, %d with warnings\n",
		s.Total, s.Valid, s.Invalid, s.WithWarnings)
}

func printContrast(report *contrast.Report, jsonOut bool) {
	if jsonOut {
		printJSON(report)
		return
	}

	fmt.Printf("Text:       %s\n", report.Text)
	fmt.Printf("Background: %s\n", report.Background)
	fmt.Printf("WCAG 2.1:   %.2f:1 (%s, %s text)\n", report.WCAG.Ratio, report.WCAG.Level, report.TextSize)
	fmt.Printf("APCA:       Lc %.1f (%s)\n", report.APCA.Score, report.APCA.Band)
	fmt.Printf("Polarity:   %s\n", report.Recommended)
	for _, a := range report.Advisories {
		fmt.Printf("Advisory:   %s\n", a)
	}
	if report.Valid {
		fmt.Println("✓ Passes required thresholds")
	} else {
		fmt.Println("✗ Below required thresholds")
	}
}

func printResolved(set *resolve.ResolvedTokenSet, jsonOut bool) {
	if jsonOut {
		printJSON(set)
		return
	}

	fmt.Printf("Brand %s: %d token(s)\n\n", set.Brand, len(set.Tokens))
	for _, t := range set.Tokens {
		fmt.Printf("  %-40s %-12s %-24s [%s]\n", t.Path, t.Type, t.Value, t.SourceLevel)
	}
}

func printRules(rs *rules.RuleSet, jsonOut bool) {
	if jsonOut {
		printJSON(rs)
		return
	}

	data, err := yaml.Marshal(rs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Print(string(data))
}
