package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"alpine/translate/internal/client"
)

type options struct {
	server   string
	from     string
	to       string
	lang     string
	logLevel string
	debounce time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "alpine",
		Short:         "Translate text and manage the translation history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(opts.logLevel)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("ALPINE_SERVER", client.DefaultServer), "translation service base URL")
	flags.StringVar(&opts.from, "from", client.DefaultSourceLang, "source language")
	flags.StringVar(&opts.to, "to", client.DefaultTargetLang, "target language")
	flags.StringVar(&opts.lang, "lang", "", "Accept-Language for server messages")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")
	flags.DurationVar(&opts.debounce, "debounce", client.DefaultDebounce, "quiet period before a prompt is sent")

	root.AddCommand(
		newTranslateCmd(opts),
		newHistoryCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newVersionCmd(),
	)
	return root
}

func (o *options) api() *client.API {
	return client.NewAPI(o.server, nil).WithLanguage(o.lang)
}

func (o *options) store() *client.Store {
	store := client.NewStore()
	store.Dispatch(client.SetSourceLang(o.from), client.SetTargetLang(o.to))
	return store
}

func newTranslateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "translate",
		Short: "Translate each line typed on stdin",
		Long: `Every line replaces the prompt. After the debounce period without new input the
prompt is translated and stored. ":swap" swaps the languages, ":quit" exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runTranslate(ctx, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runTranslate(ctx context.Context, opts *options, in io.Reader, out io.Writer) error {
	store := opts.store()
	var (
		mu   sync.Mutex
		last string
	)
	unsubscribe := store.Subscribe(func(s client.State) {
		mu.Lock()
		defer mu.Unlock()
		if s.Loading || s.Translation == "" || s.Translation == last {
			return
		}
		last = s.Translation
		fmt.Fprintf(out, "%s → %s: %s\n", s.SourceLang, s.TargetLang, s.Translation)
	})
	defer unsubscribe()

	tr := client.NewTranslator(ctx, store, opts.api(), opts.debounce)
	// Runs before unsubscribe so a result still in flight gets printed.
	defer tr.Close()

	s := store.State()
	fmt.Fprintf(out, "%s → %s (:swap, :quit)\n", s.SourceLang, s.TargetLang)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				// Input closed: send what is pending instead of dropping it.
				tr.Flush()
				tr.Wait()
				return nil
			}
			switch strings.TrimSpace(line) {
			case ":quit":
				return nil
			case ":swap":
				tr.SwapLanguages()
				s := store.State()
				fmt.Fprintf(out, "%s → %s\n", s.SourceLang, s.TargetLang)
			default:
				tr.Input(line)
			}
		}
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.store()
			if err := client.NewHistory(store, opts.api()).Load(cmd.Context()); err != nil {
				return err
			}
			history := store.State().History
			if len(history) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No translations yet")
				return nil
			}
			for _, r := range history {
				printRecord(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}

func newEditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace a record's source text and recompute its translation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			store := opts.store()
			h := client.NewHistory(store, opts.api())
			if err := h.Load(ctx); err != nil {
				return err
			}
			if err := h.Press(ctx, id); err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			h.SetEditValue(strings.Join(args[1:], " "))
			if err := h.Press(ctx, id); err != nil {
				return err
			}
			h.Wait()

			for _, r := range store.State().History {
				if r.ID == id {
					printRecord(cmd.OutOrStdout(), r)
				}
			}
			return nil
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored translation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := opts.store()
			h := client.NewHistory(store, opts.api())
			if err := h.Load(ctx); err != nil {
				return err
			}
			if err := h.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "alpine version %s (%s)\n", version, commit)
		},
	}
}

func printRecord(w io.Writer, r client.Record) {
	fmt.Fprintf(w, "%s\t[%s] %s\t[%s] %s\n", r.ID, r.SourceLang, r.SourceText, r.TargetLang, r.TranslatedText)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
