package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/codecollector/internal/app"
	"github.com/quantmind-br/codecollector/internal/config"
	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/quantmind-br/codecollector/internal/filter"
	"github.com/quantmind-br/codecollector/internal/manifest"
	"github.com/quantmind-br/codecollector/internal/output"
	"github.com/quantmind-br/codecollector/internal/tui"
	"github.com/quantmind-br/codecollector/internal/utils"
	"github.com/quantmind-br/codecollector/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "codecollector [zip-file | github-url]",
	Short: "Collect the source files of a project into one text document",
	Long: `CodeCollector flattens a local .zip archive or a public GitHub repository
into a single text file, keeping only the files whose extensions you select.

Repositories are downloaded as branch snapshots (main, then master) through
a CORS-style proxy, so no git installation or API token is needed.`,
	Version:      version.Short(),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.codecollector/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutputDir, "Output directory")
	rootCmd.PersistentFlags().Bool("force", false, "Overwrite existing files")
	rootCmd.PersistentFlags().Bool("json-meta", false, "Write a JSON metadata file next to the output")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Run the pipeline without writing files")
	rootCmd.PersistentFlags().IntP("concurrency", "j", config.DefaultWorkers, "Number of decode workers")

	// Remote flags
	rootCmd.PersistentFlags().String("proxy", config.DefaultProxyURL, "Proxy prefix for archive downloads (empty for direct)")
	rootCmd.PersistentFlags().Bool("stealth", false, "Use a browser TLS fingerprint for downloads")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable the archive cache")

	// Selection flags, root command only
	rootCmd.Flags().StringP("extensions", "e", filter.DefaultExtensions, "Comma-separated extensions to keep")
	rootCmd.Flags().BoolP("all", "a", false, "Keep every file regardless of extension")
	rootCmd.Flags().StringP("name", "n", "", "Project name used for the output file")

	// Bind flags to viper
	_ = viper.BindPFlag("output.directory", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("output.overwrite", rootCmd.PersistentFlags().Lookup("force"))
	_ = viper.BindPFlag("output.json_metadata", rootCmd.PersistentFlags().Lookup("json-meta"))
	_ = viper.BindPFlag("concurrency.workers", rootCmd.PersistentFlags().Lookup("concurrency"))
	_ = viper.BindPFlag("remote.proxy_url", rootCmd.PersistentFlags().Lookup("proxy"))
	_ = viper.BindPFlag("fetch.stealth", rootCmd.PersistentFlags().Lookup("stealth"))
	_ = viper.BindPFlag("filter.extensions", rootCmd.Flags().Lookup("extensions"))
	_ = viper.BindPFlag("filter.process_all", rootCmd.Flags().Lookup("all"))

	configCmd.AddCommand(configInitCmd, configShowCmd, configEditCmd)

	interactiveCmd.Flags().Bool("accessible", false, "Plain prompts for screen readers")

	// Add subcommands
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// setup loads configuration and builds the process-wide logger
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	return cfg, nil
}

// signalContext returns a context canceled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	name, _ := cmd.Flags().GetString("name")
	spec := filter.Parse(cfg.Filter.Extensions, cfg.Filter.ProcessAll)

	return collect(ctx, cmd, cfg, args[0], spec, name)
}

// newDependencies builds the pipeline services for one invocation
func newDependencies(cmd *cobra.Command, cfg *config.Config) (*app.Dependencies, error) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	return app.NewDependencies(app.DependencyOptions{
		Config:  cfg,
		Logger:  log,
		NoCache: noCache,
		DryRun:  dryRun,
		Progress: func(total int) app.Progress {
			return utils.NewProgressBar(os.Stderr, total, utils.DescDecoding)
		},
	})
}

// collect runs one pipeline for target and writes the combined document
func collect(ctx context.Context, cmd *cobra.Command, cfg *config.Config, target string, spec filter.Spec, project string) error {
	deps, err := newDependencies(cmd, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	state, path, err := collectOne(ctx, deps, target, spec, output.NameFor(project))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSummary(state, path))
	return nil
}

// collectOne processes target and writes the document as filename. The
// orchestrator must be idle.
func collectOne(ctx context.Context, deps *app.Dependencies, target string, spec filter.Spec, filename string) (app.State, string, error) {
	var (
		state app.State
		err   error
	)
	switch app.DetectSource(target) {
	case domain.SourceRemote:
		log.Info().Str("url", target).Msg("Downloading repository")
		state, err = deps.Orchestrator.ProcessRepository(ctx, target, spec)
	default:
		path := utils.ExpandPath(target)
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return state, "", fmt.Errorf("failed to read %s: %w", target, readErr)
		}
		state, err = deps.Orchestrator.ProcessUpload(ctx, data, filepath.Base(path), spec)
	}
	if err != nil {
		return state, "", err
	}

	if state.Phase != app.PhaseSuccess {
		log.Debug().Err(state.Err).Str("source", target).Msg("Pipeline failed")
		return state, "", errors.New(state.Message)
	}

	meta := output.NewMetadata(state.Source, spec.String(), state.Result)
	path, err := deps.Writer.Write(ctx, filename, state.Result.Text, meta)
	if err != nil {
		return state, "", fmt.Errorf("failed to write output: %w", err)
	}
	if deps.Writer.DryRun() {
		path += " (dry run)"
	}
	return state, path, nil
}

var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Collect every source listed in a YAML or JSON manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		m, err := manifest.NewLoader().Load(args[0])
		if err != nil {
			return err
		}
		if m.Options.Output != "" && !cmd.Flags().Changed("output") {
			cfg.Output.Directory = m.Options.Output
		}

		ctx, cancel := signalContext()
		defer cancel()

		deps, err := newDependencies(cmd, cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		out := cmd.OutOrStdout()
		failed := 0
		for i, src := range m.Sources {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if deps.Orchestrator.State().Phase.IsTerminal() {
				if _, err := deps.Orchestrator.Reset(); err != nil {
					return err
				}
			}

			spec := src.Spec(m.Options, cfg.Filter.Extensions)
			state, path, err := collectOne(ctx, deps, src.Source, spec, src.OutputName())
			if err != nil {
				failed++
				log.Error().Err(err).Str("source", src.Source).Msg("Source failed")
				fmt.Fprintf(out, "[%d/%d] %s: %v\n", i+1, len(m.Sources), src.Source, err)
				if !m.Options.ContinueOnError {
					return fmt.Errorf("source %s: %w", src.Source, err)
				}
				continue
			}
			fmt.Fprintf(out, "[%d/%d] %s: %d files -> %s\n", i+1, len(m.Sources), src.Source, len(state.Result.Members), path)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d sources failed", failed, len(m.Sources))
		}
		return nil
	},
}

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Pick the source and extensions in a form",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		accessible, _ := cmd.Flags().GetBool("accessible")
		values := tui.NewCollectValues(cfg.Filter.Extensions, cfg.Filter.ProcessAll)
		if err := tui.RunCollectForm(values, accessible); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		return collect(ctx, cmd, cfg, values.Target(), values.Spec(), values.ProjectName)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

// configPath is the file the config subcommands operate on
func configPath() string {
	if cfgFile != "" {
		return utils.ExpandPath(cfgFile)
	}
	return config.ConfigFilePath()
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := configPath()
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path := configPath()
		return tui.RunEditor(tui.EditorOptions{
			Config: cfg,
			Path:   path,
			SaveFunc: func(c *config.Config) error {
				return config.Save(c, path)
			},
		})
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment",
	Long:  "Verifies that the proxy is reachable and that the output and cache directories are usable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking environment...")
		allPassed := true

		fmt.Fprint(out, "  Config file: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "WARN (%v)\n", err)
			cfg = config.Default()
		} else {
			fmt.Fprintln(out, "OK")
		}

		fmt.Fprint(out, "  Proxy: ")
		switch {
		case cfg.Remote.ProxyURL == "":
			fmt.Fprintln(out, "DISABLED (direct downloads)")
		case checkProxy(cmd.Context(), http.DefaultClient, cfg.Remote.ProxyURL):
			fmt.Fprintln(out, "OK")
		default:
			fmt.Fprintln(out, "FAILED")
			allPassed = false
		}

		fmt.Fprint(out, "  Write permissions: ")
		if checkWritePermissions(utils.ExpandPath(cfg.Output.Directory)) {
			fmt.Fprintln(out, "OK")
		} else {
			fmt.Fprintln(out, "FAILED")
			allPassed = false
		}

		fmt.Fprint(out, "  Cache directory: ")
		cacheDir := cfg.Cache.Directory
		if cacheDir == "" {
			cacheDir = config.CacheDir()
		}
		cacheDir = utils.ExpandPath(cacheDir)
		if checkCacheDir(cacheDir) {
			fmt.Fprintf(out, "OK (%s)\n", cacheDir)
		} else {
			fmt.Fprintln(out, "WARN (will be created on first use)")
		}

		fmt.Fprintln(out)
		if allPassed {
			fmt.Fprintln(out, "All critical checks passed!")
		} else {
			fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkProxy reports whether the proxy host answers at all
func checkProxy(ctx context.Context, client *http.Client, proxyURL string) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	u, err := url.Parse(proxyURL)
	if err != nil || u.Host == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.Scheme+"://"+u.Host, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// checkWritePermissions checks if we can create files in dir
func checkWritePermissions(dir string) bool {
	f, err := os.CreateTemp(dir, ".codecollector_write_*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// checkCacheDir checks if the cache directory exists
func checkCacheDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.Full())
	},
}
