package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arqiv-labs/research-pipeline/internal/store"
)

var savedLimit int

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved research",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		out, err := env.Service.Saved(cmd.Context(), "local", savedLimit)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			fmt.Println("No saved research.")
			return nil
		}
		for _, rec := range out {
			fmt.Printf("%s  %-14s %-18s %s\n",
				rec.CreatedAt.Format("2006-01-02"), rec.Category, rec.Depth, rec.Topic)
		}
		return nil
	},
}

var savedDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete one saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		err = env.Service.Delete(cmd.Context(), "local", args[0])
		if errors.Is(err, store.ErrNotFound) {
			fmt.Println("Not found.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	savedCmd.Flags().IntVar(&savedLimit, "limit", 50, "maximum records to list")
	savedCmd.AddCommand(savedDeleteCmd)
	rootCmd.AddCommand(savedCmd)
}
