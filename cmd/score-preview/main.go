// Command score-preview validates and scores waitlist payloads without storing
// them. It reads JSON files named on the command line, or stdin when none are
// given.
//
//	score-preview -variant simple testdata/booker.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/ajharbinger/pomegranate-waitlist/internal/intake"
	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/internal/scoring"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

func main() {
	variant := flag.String("variant", config.VariantTiered, "waitlist variant: simple or tiered")
	flag.Parse()

	engine, err := scoring.NewScoringEngine(*variant)
	if err != nil {
		log.Fatalf("Error creating scoring engine: %v", err)
	}
	validator := intake.NewValidator(*variant)

	if flag.NArg() == 0 {
		if err := preview(os.Stdout, "stdin", os.Stdin, validator, engine); err != nil {
			log.Fatal(err)
		}
		return
	}

	failed := false
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Error opening %s: %v", path, err)
		}
		if err := preview(os.Stdout, path, f, validator, engine); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
		f.Close()
	}
	if failed {
		os.Exit(1)
	}
}

func preview(w io.Writer, name string, r io.Reader, validator *intake.Validator, engine *scoring.ScoringEngine) error {
	var req models.WaitlistRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", name, err)
	}

	sub, err := validator.Validate(&req)
	if err != nil {
		return fmt.Errorf("%s: rejected: %w", name, err)
	}

	result, err := engine.Score(sub)
	if err != nil {
		return fmt.Errorf("%s: scoring failed: %w", name, err)
	}

	printScoringResult(w, name, result)
	return nil
}

func printScoringResult(w io.Writer, name string, result *scoring.ScoreResult) {
	fmt.Fprintf(w, "%s (%s, %s policy)\n", name, result.UserType, result.Policy)
	fmt.Fprintf(w, "  Interest score: %d / %d\n", result.Score, result.MaxScore)

	keys := make([]string, 0, len(result.Breakdown))
	for key := range result.Breakdown {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		detail := result.Breakdown[key]
		mark := "-"
		if detail.Triggered {
			mark = "+"
		}
		fmt.Fprintf(w, "  %s %-26s %d/%d  %s\n", mark, key, detail.Points, detail.MaxPoints, detail.Description)
	}
}
