package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nchouhan/ogni-scan/internal/answer"
	"github.com/nchouhan/ogni-scan/internal/models"
)

var (
	querySkills        []string
	queryDomain        string
	queryMinExperience float64
	queryLimit         int
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run a one-shot recruiter query against the indexed resumes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		q := models.Query{
			Text:  args[0],
			Limit: queryLimit,
			Filters: models.SearchFilters{
				Skills: querySkills,
				Domain: queryDomain,
			},
		}
		if cmd.Flags().Changed("min-experience") {
			q.Filters.MinExperience = &queryMinExperience
		}

		payload, err := a.resolver.Resolve(cmd.Context(), q)
		if err != nil {
			return err
		}
		system, user := payload.Prompt()
		raw, err := a.chat.Complete(cmd.Context(), system, user)
		if err != nil {
			return err
		}

		a.log.Info().Msg("Query: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
		fmt.Printf("%s\n\n", q.Text)

		a.log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
		printResult(answer.Normalize(raw), raw)
		return nil
	},
}

func init() {
	queryCmd.Flags().StringSliceVar(&querySkills, "skills", nil, "required skills, all must match")
	queryCmd.Flags().StringVar(&queryDomain, "domain", "", "required industry domain")
	queryCmd.Flags().Float64Var(&queryMinExperience, "min-experience", 0, "minimum years of experience")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "maximum candidates to return")
	rootCmd.AddCommand(queryCmd)
}

// printResult renders candidate cards when the response parsed, the
// verbatim text otherwise.
func printResult(res answer.Result, raw string) {
	if !res.Structured {
		fmt.Printf("%s\n\n", raw)
		return
	}
	for _, block := range res.Blocks {
		switch block.Kind {
		case answer.BlockCandidate:
			c := block.Candidate
			fmt.Printf("* %s", c.Name)
			if c.Role != "" {
				fmt.Printf(" - %s", c.Role)
			}
			if c.Company != "" {
				fmt.Printf(" @ %s", c.Company)
			}
			fmt.Println()
			if len(c.Skills) > 0 {
				fmt.Printf("  skills: %s\n", strings.Join(c.Skills, ", "))
			}
			if c.Experience != "" {
				fmt.Printf("  experience: %s\n", c.Experience)
			}
			if c.Relevance != "" {
				fmt.Printf("  relevance: %s\n", c.Relevance)
			}
			if c.Justification != "" {
				fmt.Printf("  %s\n", c.Justification)
			}
		case answer.BlockTable:
			fmt.Println("  " + strings.Join(block.Table.Headers, " | "))
			for _, row := range block.Table.Rows {
				fmt.Println("  " + strings.Join(row, " | "))
			}
		default:
			if block.Text != "" {
				fmt.Printf("%s\n", block.Text)
			}
		}
	}
	fmt.Println()
}
