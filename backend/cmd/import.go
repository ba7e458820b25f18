package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Xornee/langify-your-daily-english-boost/backend/reports"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
)

var importCmd = &cobra.Command{
	Use:   "import-vocabulary <file.xlsx>",
	Short: "Load vocabulary items from a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		items, skipped, err := reports.ReadVocabulary(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		for _, s := range skipped {
			logger.Warn("row skipped", "row", s.Row, "reason", s.Reason)
		}

		content := services.NewContentService(repository.New(db, logger), logger)
		n, err := content.ImportVocabulary(cmd.Context(), items)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d items, skipped %d rows\n", n, len(skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
