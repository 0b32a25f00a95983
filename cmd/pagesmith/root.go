package pagesmith

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/pagesmith/internal/version"
	"github.com/arthur-debert/pagesmith/pkg/config"
	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/filesystem"
	"github.com/arthur-debert/pagesmith/pkg/logging"
	"github.com/arthur-debert/pagesmith/pkg/pipeline"
	"github.com/arthur-debert/pagesmith/pkg/ui"
)

// rootFlags holds the raw flag values. Only flags the user changed are
// passed on to the settings layers.
type rootFlags struct {
	verbosity    int
	settingsFile string
	envFile      string
	config       string
	outdir       string
	indexes      bool
	format       string
	jobs         int
	partials     []string
	sitemap      string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "pagesmith [flags] <templates...> [-- key=value ...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(f.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, f)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&f.config, "config", "c", "", MsgFlagConfig)
	flags.StringVar(&f.config, "data", "", MsgFlagData)
	flags.StringVarP(&f.outdir, "outdir", "o", "", MsgFlagOutdir)
	flags.BoolVar(&f.indexes, "indexes", false, MsgFlagIndexes)
	flags.StringVar(&f.format, "format", "auto", MsgFlagFormat)
	flags.IntVarP(&f.jobs, "jobs", "j", 1, MsgFlagJobs)
	flags.StringSliceVar(&f.partials, "partials", nil, MsgFlagPartials)
	flags.StringVar(&f.sitemap, "sitemap", "", MsgFlagSitemap)

	rootCmd.PersistentFlags().CountVarP(&f.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&f.settingsFile, "settings", "", MsgFlagSettings)
	rootCmd.PersistentFlags().StringVar(&f.envFile, "env-file", "", MsgFlagEnvFile)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGuideCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func runBuild(cmd *cobra.Command, args []string, f *rootFlags) error {
	logger := logging.GetLogger("cmd.build")

	inputs, overrides := splitArgs(cmd, args)
	if len(inputs) == 0 {
		return cmd.Help()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to get working directory")
	}

	settings, err := config.LoadSettings(config.Sources{
		File:    f.settingsFile,
		EnvFile: f.envFile,
		WorkDir: workDir,
		Flags:   changedFlags(cmd, f),
	})
	if err != nil {
		return err
	}
	if settings.Verbose > f.verbosity {
		logging.SetupLogger(settings.Verbose)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	format, err := ui.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	partials, err := expandPartials(settings.Partials)
	if err != nil {
		return reported(renderer, err)
	}

	if settings.Config == "" {
		if err := renderer.RenderMessage(MsgNoConfig); err != nil {
			return err
		}
	}

	logger.Info().
		Strs("inputs", inputs).
		Strs("overrides", overrides).
		Str("config", settings.Config).
		Str("outdir", settings.Outdir).
		Bool("indexes", settings.Indexes).
		Int("jobs", settings.Jobs).
		Msg("Starting build")

	report, err := pipeline.Run(cmd.Context(), pipeline.Options{
		FS:             filesystem.NewOS(),
		ConfigPath:     settings.Config,
		Overrides:      overrides,
		Inputs:         inputs,
		OutDir:         settings.Outdir,
		Indexes:        settings.Indexes,
		Jobs:           settings.Jobs,
		Partials:       partials,
		SitemapBaseURL: settings.Sitemap,
	})
	if err != nil {
		return reported(renderer, err)
	}

	return renderer.RenderReport(report)
}

// reportedError is a run error the build's renderer has already shown
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// reported renders err in the build's format and marks it as shown
func reported(renderer ui.Renderer, err error) error {
	if rerr := renderer.RenderError(err); rerr != nil {
		return err
	}
	return reportedError{err}
}

// Reported reports whether err was already rendered by the build command,
// so callers do not print it a second time.
func Reported(err error) bool {
	var r reportedError
	return stderrors.As(err, &r)
}

// splitArgs separates input templates from the override tokens given
// after "--".
func splitArgs(cmd *cobra.Command, args []string) (inputs, overrides []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// changedFlags maps the flags set on the command line to settings keys
func changedFlags(cmd *cobra.Command, f *rootFlags) map[string]interface{} {
	flags := cmd.Flags()
	out := map[string]interface{}{}

	if flags.Changed("config") || flags.Changed("data") {
		out["config"] = f.config
	}
	if flags.Changed("outdir") {
		out["outdir"] = f.outdir
	}
	if flags.Changed("indexes") {
		out["indexes"] = f.indexes
	}
	if flags.Changed("format") {
		out["format"] = f.format
	}
	if flags.Changed("jobs") {
		out["jobs"] = f.jobs
	}
	if flags.Changed("partials") {
		out["partials"] = f.partials
	}
	if flags.Changed("sitemap") {
		out["sitemap"] = f.sitemap
	}
	if flags.Changed("verbose") {
		out["verbose"] = f.verbosity
	}
	return out
}

// expandPartials resolves glob patterns. A pattern without matches is kept
// as given so a missing partial is reported by name.
func expandPartials(patterns []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, MsgErrPartialGlob, pattern).
				WithDetail("pattern", pattern)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}
