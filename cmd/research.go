package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arqiv-labs/research-pipeline/internal/research"
	"github.com/arqiv-labs/research-pipeline/internal/store"
)

var (
	researchCategory   string
	researchDepth      string
	researchRegenerate bool
	researchSave       bool
	researchShowPrompt bool
)

var researchCmd = &cobra.Command{
	Use:   "research [query]",
	Short: "Run the research pipeline for one query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.Service.Run(cmd.Context(), research.Request{
			Query:      strings.Join(args, " "),
			Category:   researchCategory,
			Depth:      researchDepth,
			Regenerate: researchRegenerate,
		})
		if err != nil {
			return err
		}

		if researchShowPrompt {
			fmt.Println(res.Prompt)
			fmt.Println("---")
		}
		fmt.Println(res.Response)

		if len(res.Suggestions) > 0 {
			fmt.Println("\nFollow-up suggestions:")
			for _, s := range res.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}

		if researchSave {
			saved, err := env.Service.Save(cmd.Context(), "local", res)
			if errors.Is(err, store.ErrAlreadySaved) {
				fmt.Println("\nAlready saved.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("\nSaved as %s\n", saved.ID)
		}
		return nil
	},
}

func init() {
	researchCmd.Flags().StringVar(&researchCategory, "category", "", "research category (Person, Event, Year, Concept, Location, Research Buddy)")
	researchCmd.Flags().StringVar(&researchDepth, "depth", "", "research depth (Quick Idea, Detailed Research, Investigator Mode, Everything)")
	researchCmd.Flags().BoolVar(&researchRegenerate, "regenerate", false, "bypass the cache and vary the perspective")
	researchCmd.Flags().BoolVar(&researchSave, "save", false, "persist the result")
	researchCmd.Flags().BoolVar(&researchShowPrompt, "show-prompt", false, "print the composed prompt before the response")
	rootCmd.AddCommand(researchCmd)
}
