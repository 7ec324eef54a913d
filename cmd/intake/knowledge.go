package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/intake/internal/config"
	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/installer"
	"github.com/sandevgo/intake/internal/service/knowledge"
	"github.com/sandevgo/intake/internal/service/ui"
	"github.com/sandevgo/intake/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the question and answer knowledge base",
}

var knowledgeImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import entries from a JSON or YAML file",
	Long: `Validates the file and upserts its entries in order. Without an argument the
knowledge.yaml in the runtime directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		path := filepath.Join(config.GetRuntimePath(), installer.KnowledgeFile)
		if len(args) == 1 {
			path = args[0]
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		items, err := parseKnowledgeFile(path, data)
		if err != nil {
			return err
		}

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		db, err := sqlite.NewDB(ctx, config.NewAppConfig(ctx).GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := sqlite.NewKnowledgeRepo(db).Upsert(ctx, items)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.UsageStyle.Render(fmt.Sprintf("imported %d entries from %s", n, path)))
		return nil
	},
}

var knowledgeListLang string

var knowledgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored knowledge entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		var lang core.Language
		if knowledgeListLang != "" {
			parsed, err := core.ParseLanguage(knowledgeListLang)
			if err != nil {
				return err
			}
			lang = parsed
		}

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		db, err := sqlite.NewDB(ctx, config.NewAppConfig(ctx).GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := sqlite.NewKnowledgeRepo(db).List(ctx, lang)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.DescStyle.Render("no stored entries, the built-in defaults are in use"))
			return nil
		}

		out := cmd.OutOrStdout()
		for _, it := range items {
			fmt.Fprintf(out, "%s %s\n", ui.FlagStyle.Render(fmt.Sprintf("[%s #%d]", it.Language, it.ID)), it.Question)
			fmt.Fprintln(out, ui.DescStyle.Render("  "+it.Answer))
		}
		return nil
	},
}

// parseKnowledgeFile picks the decoder by extension.
func parseKnowledgeFile(path string, data []byte) ([]core.KnowledgeItem, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return knowledge.ParseYAML(data)
	case ".json":
		return knowledge.Parse(data)
	default:
		return nil, fmt.Errorf("unsupported knowledge file %q, use .json, .yaml or .yml", path)
	}
}

func init() {
	knowledgeListCmd.Flags().StringVarP(&knowledgeListLang, "lang", "l", "", "only entries in this language")
	knowledgeCmd.AddCommand(knowledgeImportCmd, knowledgeListCmd)
	rootCmd.AddCommand(knowledgeCmd)
}
