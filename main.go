// para2github syncs Paratranz translations into a modpack repository.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/minios-linux/para2github/config"
	"github.com/minios-linux/para2github/console"
	"github.com/minios-linux/para2github/i18n"
	"github.com/minios-linux/para2github/locale"
	"github.com/minios-linux/para2github/paratranz"
	"github.com/minios-linux/para2github/pipeline"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "para2github",
		Short: "Sync Paratranz translations into the modpack repository",
		Long: `para2github downloads every file of a Paratranz project and writes the
translated language files into the repository.

Environment:
  API_TOKEN            Paratranz API token (required)
  PROJECT_ID           Paratranz project ID (required)
  PARATRANZ_BASE_URL   API root (default https://paratranz.cn/api)
  PARA2GITHUB_CONFIG   layout file (default ./.para2github.yaml)

A .env file in the working directory is loaded if present.

Outputs:
  <output_root>/<path>/<target_locale>.json
      one file per Paratranz file, keys in the order of the matching
      <source_root>/<path>/<source_locale>.json
  <output_root>/config/ftbquests/quests/lang/<target_locale>.snbt
      quest texts from kubejs/assets/quests/lang/, descriptions grouped`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context())
		},
	}

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		console.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

func runSync(ctx context.Context) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	target, err := locale.Parse(cfg.Layout.TargetLocale)
	if err != nil {
		return err
	}
	console.Info(i18n.T("Project %d, target language %s (%s)"), cfg.ProjectID, target.Name, target.Code)

	client := paratranz.NewClient(cfg.BaseURL, cfg.Token, cfg.ProjectID, cfg.Timeout)
	w := &pipeline.Writer{Root: ".", Layout: cfg.Layout}

	start := time.Now()
	sum, err := pipeline.Run(ctx, client, w)
	if err != nil {
		return err
	}

	console.Success(i18n.T("Sync complete in %s: %d files written, %d skipped, %d quest files merged into %d keys"),
		time.Since(start).Round(time.Millisecond), sum.Written, sum.Skipped, sum.QuestFiles, sum.QuestKeys)
	return nil
}
