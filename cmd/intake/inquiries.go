package main

import (
	"fmt"
	"time"

	"github.com/sandevgo/intake/internal/config"
	"github.com/sandevgo/intake/internal/service/ui"
	"github.com/sandevgo/intake/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var inquiriesLimit int

var inquiriesCmd = &cobra.Command{
	Use:   "inquiries",
	Short: "Show the most recently saved inquiries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		db, err := sqlite.NewDB(ctx, config.NewAppConfig(ctx).GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		list, err := sqlite.NewInquiryRepo(db).ListInquiries(ctx, inquiriesLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, inq := range list {
			fmt.Fprintf(out, "%s %s <%s> %s\n",
				ui.FlagStyle.Render(inq.SavedAt.Local().Format(time.DateTime)),
				inq.Name, inq.Email,
				ui.UsageStyle.Render(string(inq.InquiryType)))
			fmt.Fprintln(out, ui.DescStyle.Render(inq.Description))
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	inquiriesCmd.Flags().IntVarP(&inquiriesLimit, "limit", "n", 20, "number of inquiries to show")
	rootCmd.AddCommand(inquiriesCmd)
}
