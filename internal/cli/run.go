package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"halluclean/internal/cache"
	"halluclean/internal/jsonl"
	"halluclean/internal/llm"
	"halluclean/internal/model"
	"halluclean/internal/pipeline"
	"halluclean/internal/task"
	"halluclean/internal/worker"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	taskName    string
	modeName    string
	inputPath   string
	outputPath  string
	provider    string
	detectModel string
	reviseModel string
	concurrency int
	timeout     int
	maxTokens   int
	rps         float64
	cacheOn     bool
	cacheDir    string
	onAmbiguous string
	limit       int
	httpProxy   string
	httpsProxy  string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a JSONL batch of records",
	Long: `Run detection and/or revision over a batch of JSONL records.

Each input line is one JSON object whose fields depend on the task:
  qa   {"question": "...", "answer": "..."}
  sum  {"source_text": "...", "summary": "..."}
  da   {"context": "...", "response": "..."}
  tsc  {"text": "..."}
  mwp  {"problem": "...", "solution": "..."}

Each output line reproduces the input fields plus the results: plan,
analysis, raw_judgement, is_hallucinated, revised_answer where
applicable, and error/error_stage when a record failed.

Example:
  halluclean run --task qa --input qa.jsonl --output out.jsonl
  halluclean run --task sum --mode detect --detect-model gpt-4o
  cat in.jsonl | halluclean run --task tsc --provider ollama --detect-model llama3.1:8b`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&taskName, "task", "", "task family: qa, sum, da, tsc, mwp (required)")
	runCmd.Flags().StringVar(&modeName, "mode", "pipeline", "run mode: detect, revise, pipeline")
	runCmd.Flags().StringVar(&inputPath, "input", "-", "input JSONL path ('-' = stdin)")
	runCmd.Flags().StringVar(&outputPath, "output", "-", "output JSONL path ('-' = stdout)")
	runCmd.Flags().StringVar(&provider, "provider", "openai", "model provider (openai, anthropic, ollama)")
	runCmd.Flags().StringVar(&detectModel, "detect-model", "gpt-4o-mini", "model id for detection stages")
	runCmd.Flags().StringVar(&reviseModel, "revise-model", "", "model id for revision (default: same as --detect-model)")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	runCmd.Flags().IntVar(&timeout, "timeout", 60, "per-call timeout in seconds")
	runCmd.Flags().IntVar(&maxTokens, "max-tokens", 512, "max tokens per stage call")
	runCmd.Flags().Float64Var(&rps, "rps", 2.0, "model calls per second per model id")
	runCmd.Flags().BoolVar(&cacheOn, "cache", false, "cache generations on disk across runs")
	runCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "generation cache directory (default: $HOME/.halluclean/cache)")
	runCmd.Flags().StringVar(&onAmbiguous, "on-ambiguous", "fail", "ambiguous judgement policy: fail, not-hallucinated")
	runCmd.Flags().IntVar(&limit, "limit", 0, "process only the first N records (0 = all)")
	runCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	runCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	_ = runCmd.MarkFlagRequired("task")

	// Bound flags give the full precedence chain: flag > env > config
	// file > default
	_ = viper.BindPFlag("provider.name", runCmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("provider.timeout", runCmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("provider.max_tokens", runCmd.Flags().Lookup("max-tokens"))
	_ = viper.BindPFlag("provider.http_proxy", runCmd.Flags().Lookup("http-proxy"))
	_ = viper.BindPFlag("provider.https_proxy", runCmd.Flags().Lookup("https-proxy"))
	_ = viper.BindPFlag("models.detect", runCmd.Flags().Lookup("detect-model"))
	_ = viper.BindPFlag("models.revise", runCmd.Flags().Lookup("revise-model"))
	_ = viper.BindPFlag("concurrency.workers", runCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("rate_limit.requests_per_second", runCmd.Flags().Lookup("rps"))
	_ = viper.BindPFlag("cache.enabled", runCmd.Flags().Lookup("cache"))
	_ = viper.BindPFlag("cache.dir", runCmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("judgement.on_ambiguous", runCmd.Flags().Lookup("on-ambiguous"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	// Fatal configuration errors surface here, before any model call
	t, err := task.Parse(taskName)
	if err != nil {
		return err
	}
	spec, err := task.SpecFor(t)
	if err != nil {
		return err
	}
	mode, err := model.ParseMode(modeName)
	if err != nil {
		return err
	}
	policy, err := pipeline.ParseAmbiguousPolicy(viper.GetString("judgement.on_ambiguous"))
	if err != nil {
		return err
	}

	cfg := buildConfig()
	if err := resolveCredentials(cfg); err != nil {
		return err
	}

	prov, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	// User interrupt stops dispatching new records; in-flight records
	// finish or observe the context themselves
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := jsonl.Read(inputPath)
	if err != nil {
		return err
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	detector := pipeline.NewDetector(prov, cfg.Models.Detect, cfg.Models.DetectTemperature, cfg.Provider.MaxTokens)
	reviser := pipeline.NewReviser(prov, cfg.Models.ReviseModel(), cfg.Models.ReviseTemperature, cfg.Provider.MaxTokens)
	controller := pipeline.NewController(spec, mode, detector, reviser, policy)

	// Records missing required fields are rejected before any model call
	for _, rec := range records {
		if _, err := controller.Validate(rec); err != nil {
			return fmt.Errorf("record %d: %w", rec.Index, err)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  HalluClean Batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Task:         %s\n", t)
	fmt.Fprintf(os.Stderr, "  Mode:         %s\n", mode)
	fmt.Fprintf(os.Stderr, "  Provider:     %s\n", cfg.Provider.Name)
	fmt.Fprintf(os.Stderr, "  Detect model: %s\n", cfg.Models.Detect)
	fmt.Fprintf(os.Stderr, "  Revise model: %s\n", cfg.Models.ReviseModel())
	fmt.Fprintf(os.Stderr, "  Records:      %d\n", len(records))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	var mu sync.Mutex
	done := 0

	pool := worker.NewPool(cfg.Concurrency.Workers)
	pool.Process(ctx, records, func(ctx context.Context, rec *model.Record) {
		controller.Process(ctx, rec)

		mu.Lock()
		done++
		if rec.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ record %d: %v\n", rec.Index, rec.Err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ record %d (%d/%d)\n", rec.Index, done, len(records))
		}
		mu.Unlock()
	})

	if err := jsonl.Write(outputPath, records); err != nil {
		return err
	}

	succeeded, failed := 0, 0
	for _, rec := range records {
		if rec.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d records\n", len(records))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", succeeded)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failed)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// buildConfig assembles the runtime configuration. Bound viper keys
// resolve flag > env > config file > default.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	cfg.Provider.Name = viper.GetString("provider.name")
	cfg.Provider.Timeout = viper.GetInt("provider.timeout")
	cfg.Provider.MaxTokens = viper.GetInt("provider.max_tokens")
	cfg.Provider.HTTPProxy = viper.GetString("provider.http_proxy")
	cfg.Provider.HTTPSProxy = viper.GetString("provider.https_proxy")
	cfg.Models.Detect = viper.GetString("models.detect")
	cfg.Models.Revise = viper.GetString("models.revise")
	cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	cfg.RateLimit.RequestsPerSecond = viper.GetFloat64("rate_limit.requests_per_second")
	if perModel := viper.GetStringMap("rate_limit.per_model"); len(perModel) > 0 {
		cfg.RateLimit.PerModel = make(map[string]float64, len(perModel))
		for modelID, rps := range perModel {
			cfg.RateLimit.PerModel[modelID] = cast.ToFloat64(rps)
		}
	}
	cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	cfg.Cache.Dir = viper.GetString("cache.dir")
	cfg.Judgement.OnAmbiguous = viper.GetString("judgement.on_ambiguous")
	cfg.Output.Verbose = verbose

	return cfg
}

// resolveCredentials fills in API keys and endpoints from the
// environment
func resolveCredentials(cfg *model.Config) error {
	switch cfg.Provider.Name {
	case "openai":
		cfg.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Provider.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		if base := os.Getenv("OPENAI_BASE_URL"); base != "" && cfg.Provider.BaseURL == "" {
			cfg.Provider.BaseURL = base
		}
	case "anthropic", "claude":
		cfg.Provider.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Provider.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if base := os.Getenv("OLLAMA_BASE_URL"); base != "" && cfg.Provider.BaseURL == "" {
			cfg.Provider.BaseURL = base
		}
	}
	return nil
}

// buildProvider assembles the provider stack, including the optional
// generation cache
func buildProvider(cfg *model.Config) (llm.Provider, error) {
	var generationCache cache.Cache
	ttl := time.Duration(cfg.Cache.TTL) * time.Second

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("find home directory: %w", err)
			}
			dir = home + "/.halluclean/cache"
		}
		generationCache = cache.NewLayeredCache(
			cache.NewMemoryCache(ttl, 10*time.Minute),
			cache.NewDiskCache(dir, ttl),
		)
	}

	return llm.Build(llm.ConfigFromModel(cfg), generationCache, ttl)
}
