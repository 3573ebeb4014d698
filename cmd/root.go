package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"syosetu-downloader/config"
	"syosetu-downloader/downloader/syosetu"
	"syosetu-downloader/model"
)

type rootArgs struct {
	From    int
	To      int
	R18     bool
	Title   string
	cfgFile string
	// toSet is true when --to was given on the command line.
	toSet bool
}

var RootCmd = NewRootCmd()

func NewRootCmd() *cobra.Command {
	var (
		args rootArgs
		cfg  *config.Config
		v    = viper.New()
	)

	cmd := &cobra.Command{
		Use:   "syosetu-downloader [flags] <novel-id>",
		Short: "Download the text of syosetu novels",
		Long: `Download the text of syosetu novels into a single Markdown file.

Run without any argument to be asked for the novel and chapters interactively.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(v, args.cfgFile)
			if err != nil {
				return err
			}
			SetupLogging(cmd.ErrOrStderr(), cfg.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, positional []string) error {
			if len(positional) == 0 && cmd.Flags().NFlag() == 0 {
				return runInteractive(cmd, cfg)
			}
			if len(positional) == 0 {
				return fmt.Errorf("novel id is required")
			}
			args.toSet = cmd.Flags().Changed("to")
			req, err := args.request(positional[0])
			if err != nil {
				return err
			}
			return runDownload(cmd, cfg, req)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&args.From, "from", 1, "Specify from which chapter to start dumping")
	flags.IntVar(&args.To, "to", 0, "Specify until which chapter to dump (default: last chapter)")
	flags.BoolVar(&args.R18, "r18", false, "Novel is published on the 18+ site")
	flags.StringVar(&args.Title, "title", "", "Title of the output document (default: novel title)")
	flags.StringP("output-dir", "o", ".", "Directory the Markdown file is written to")
	flags.Int("max-retries", 0, "Give up a chapter after this many failed requests (0: retry until interrupted)")
	flags.String("layout", config.LayoutCurrent, "Chapter page layout (current, legacy)")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&args.cfgFile, "config", "", "Config file")
	persistent.BoolP("verbose", "v", false, "Enable verbose logging")

	_ = v.BindPFlag("output_dir", flags.Lookup("output-dir"))
	_ = v.BindPFlag("max_retries", flags.Lookup("max-retries"))
	_ = v.BindPFlag("layout", flags.Lookup("layout"))
	_ = v.BindPFlag("verbose", persistent.Lookup("verbose"))

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (a rootArgs) request(novel string) (model.Request, error) {
	id, err := model.ParseNovelId(novel)
	if err != nil {
		return model.Request{}, err
	}
	if a.toSet && a.To == 0 {
		return model.Request{}, fmt.Errorf("%w: to chapter cannot be zero", model.ErrInvalidRange)
	}
	req := model.Request{
		NovelId: id,
		Adult:   a.R18,
		Range:   model.ChapterRange{From: a.From, To: a.To},
		Title:   a.Title,
	}
	if err := req.Range.Validate(); err != nil {
		return model.Request{}, err
	}
	return req, nil
}

func runDownload(cmd *cobra.Command, cfg *config.Config, req model.Request) error {
	if req.OutputDir == "" {
		req.OutputDir = cfg.OutputDir
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	downloader := syosetu.New(cfg, syosetu.WithOutput(cmd.OutOrStdout()))
	report, err := downloader.Download(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to download novel: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d chapters to %s\n", report.Chapters, report.Path)
	return nil
}
