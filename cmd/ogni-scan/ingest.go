package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Upload and index one or more resume files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			resume, err := a.ingest.Upload(cmd.Context(), filepath.Base(path), data)
			if err != nil {
				return fmt.Errorf("uploading %s: %w", path, err)
			}
			if err := a.ingest.Process(cmd.Context(), resume.ID); err != nil {
				return fmt.Errorf("processing %s: %w", path, err)
			}

			processed, err := a.store.GetResume(cmd.Context(), resume.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s: resume %d (%s), %d chunks, status %s\n",
				path, processed.ID, processed.CandidateName, processed.ChunkCount, processed.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
