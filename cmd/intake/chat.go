package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/transport/cli"
	"github.com/sandevgo/intake/pkg/log"
	"github.com/spf13/cobra"
)

var chatLang string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in the terminal",
	Long:  `Runs a single conversation in an interactive prompt. Completed inquiries are saved like on any other channel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		a, err := newApp(ctx, nil, 0)
		if err != nil {
			return err
		}
		defer func() {
			for _, c := range a.cleanups {
				if err := c.Shutdown(ctx); err != nil {
					log.FromCtx(ctx).Warn().Err(err).Msg("cleanup failed")
				}
			}
		}()

		lang := a.cfg.GetDefaultLanguage()
		if chatLang != "" {
			if lang, err = core.ParseLanguage(chatLang); err != nil {
				return err
			}
		}

		repl, err := cli.NewReadLine(a.sessions, a.commands, a.cfg, lang)
		if err != nil {
			return err
		}
		defer repl.Shutdown(ctx)

		return repl.Start(ctx)
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatLang, "lang", "l", "", "conversation language (en, ko, zh)")
	rootCmd.AddCommand(chatCmd)
}
