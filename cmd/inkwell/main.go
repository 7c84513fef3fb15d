// Package main provides the inkwell CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/richinex/inkwell/cli"
	"github.com/richinex/inkwell/internal/failure"
)

var (
	// Global flags
	jsonOutput bool
	colorMode  string
	quiet      bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Scheduled SEO blog publishing",
		Long: `A CLI that keeps a static site's blog fed.

Jobs:
- generate:   pick the next keyword, generate a post, store it, refresh the sitemap
- newsletter: mail the latest post to subscribers, once per post
- schedule:   run both jobs on cron lines until interrupted

Configuration is read from the environment (and .env when present).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print run reports as JSON")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors and JSON")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(newsletterCmd())
	rootCmd.AddCommand(sitemapCmd())
	rootCmd.AddCommand(keywordsCmd())
	rootCmd.AddCommand(scheduleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(failure.ExitCode(err))
	}
}

func options() cli.Options {
	return cli.Options{JSON: jsonOutput, Color: colorMode, Quiet: quiet}
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate and publish one post",
		Long: `Generate one post for the next unused keyword in the queue.

The post is stored only when the generated reply carries a title and content.
After the store write the sitemap is rebuilt and search engines are notified;
those steps are best effort and never fail the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Generate(cmd.Context(), options())
		},
	}
}

func newsletterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "newsletter",
		Short: "Mail the latest post to subscribers",
		Long: `Mail the latest post to every subscriber in one message.

A post is mailed at most once. It is recorded as sent only after the email
provider accepted the message.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Newsletter(cmd.Context(), options())
		},
	}
}

func sitemapCmd() *cobra.Command {
	var ping bool

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Rebuild the sitemap from the content store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Sitemap(cmd.Context(), options(), ping)
		},
	}

	cmd.Flags().BoolVar(&ping, "ping", false, "Ping search engines after writing")

	return cmd
}

func keywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "Show keyword queue usage and the next pick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Keywords(cmd.Context(), options())
		},
	}
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run generate and newsletter on their cron schedules",
		Long: `Run the jobs on SCHEDULE_GENERATE and SCHEDULE_NEWSLETTER until SIGINT or SIGTERM.

A job never overlaps itself; a tick that arrives during a run is skipped.
Failed runs are logged and retried at the next tick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Schedule(cmd.Context(), options())
		},
	}
}
