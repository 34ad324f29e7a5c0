package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/proctex/internal/async"
	"github.com/MeKo-Tech/proctex/internal/export"
	"github.com/MeKo-Tech/proctex/internal/texture"
)

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Generate mutated variants of a texture configuration",
	Long: `Mutate the configuration of one kind into a set of variants and render
them in the background.

Every variant is written as <kind>_<n>_{albedo,normal,orm}.png next to
<kind>_<n>.yaml, a config file fragment that reproduces it. With
--crossover, variants after the first two are bred from two earlier
variants before mutation.`,
	RunE: runEvolve,
}

func init() {
	rootCmd.AddCommand(evolveCmd)

	evolveCmd.Flags().String("kind", "bark", "Kind to evolve (bark, rock, ground, leaf, twig)")
	evolveCmd.Flags().Int("variants", 8, "Number of variants")
	evolveCmd.Flags().Float64("rate", 0.3, "Per-field mutation probability (0..1)")
	evolveCmd.Flags().Int64("seed", 1, "Seed for the mutation sequence")
	evolveCmd.Flags().Bool("crossover", false, "Breed later variants from earlier ones")
	evolveCmd.Flags().Int("width", 256, "Texture width in pixels")
	evolveCmd.Flags().Int("height", 256, "Texture height in pixels")
	evolveCmd.Flags().Int("max-concurrent", 0, "Maximum variants rendered at once (0 = number of CPUs)")
	evolveCmd.Flags().Duration("poll-interval", 50*time.Millisecond, "Interval between completion polls")
	evolveCmd.Flags().String("png-compression", "speed", "PNG compression (default, speed, best, none)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"evolve.kind", "kind"},
		{"evolve.variants", "variants"},
		{"evolve.rate", "rate"},
		{"evolve.seed", "seed"},
		{"evolve.crossover", "crossover"},
		{"evolve.width", "width"},
		{"evolve.height", "height"},
		{"evolve.max_concurrent", "max-concurrent"},
		{"evolve.poll_interval", "poll-interval"},
		{"evolve.png_compression", "png-compression"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, evolveCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runEvolve(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	outputDir := viper.GetString("output-dir")
	kind := viper.GetString("evolve.kind")
	count := viper.GetInt("evolve.variants")
	rate := viper.GetFloat64("evolve.rate")
	seed := viper.GetInt64("evolve.seed")
	breed := viper.GetBool("evolve.crossover")
	width := viper.GetInt("evolve.width")
	height := viper.GetInt("evolve.height")
	interval := viper.GetDuration("evolve.poll_interval")

	if count <= 0 {
		return fmt.Errorf("variants must be positive")
	}
	if rate < 0 || rate > 1 {
		return fmt.Errorf("rate must be within [0,1]")
	}
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	if err := texture.ValidateDimensions(width, height); err != nil {
		return err
	}
	compression, err := parseCompression(viper.GetString("evolve.png_compression"))
	if err != nil {
		return err
	}
	base, err := loadConfigs(viper.GetViper())
	if err != nil {
		return err
	}

	variants, err := breedVariants(base, kind, count, rate, breed, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	executor := async.NewExecutor(async.ExecutorConfig{
		MaxConcurrent: viper.GetInt("evolve.max_concurrent"),
		Logger:        logger,
	})
	queue := async.NewQueue(executor)

	byLabel := make(map[string]configs, len(variants))
	for i, v := range variants {
		gen, err := v.generator(kind)
		if err != nil {
			return err
		}
		label := fmt.Sprintf("%s_%02d", kind, i)
		byLabel[label] = v
		queue.Submit(label, async.Generate(gen, width, height))
	}

	logger.Info("Evolving variants",
		"kind", kind,
		"variants", count,
		"rate", rate,
		"seed", seed,
		"crossover", breed,
		"output_dir", outputDir,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := export.Options{Compression: compression}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var failedCount int
	for queue.Len() > 0 {
		select {
		case <-ctx.Done():
			logger.Info("Received interrupt signal, waiting for running variants...")
			executor.Wait()
			return ctx.Err()
		case <-ticker.C:
		}

		for _, c := range queue.Poll() {
			label := c.Handle.Label()
			if err := writeVariant(outputDir, label, kind, byLabel[label], c.Result, opts); err != nil {
				failedCount++
				logger.Error("Variant failed", "label", label, "error", err)
				continue
			}
			logger.Debug("Variant written", "label", label, "elapsed", c.Elapsed)
		}
		logger.Debug("Executor status", "status", executor.Status())
	}

	st := executor.Status()
	logger.Info("Evolution complete", "completed", st.Completed, "failed", st.Failed)

	if failedCount > 0 {
		return fmt.Errorf("%d variants failed", failedCount)
	}
	return nil
}

// breedVariants derives count configurations from base. Without breeding
// every variant is a mutation of base; with breeding, variants from the
// third on cross two random earlier variants first.
func breedVariants(base configs, kind string, count int, rate float64, breed bool, rng *rand.Rand) ([]configs, error) {
	variants := make([]configs, 0, count)
	for i := 0; i < count; i++ {
		v := base
		if breed && i >= 2 {
			a := variants[rng.Intn(len(variants))]
			b := variants[rng.Intn(len(variants))]
			var err error
			if v, err = a.crossover(kind, b, rng); err != nil {
				return nil, err
			}
		}
		if err := v.mutate(kind, rng, rate); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

func writeVariant(dir, label, kind string, cfg configs, r async.Result, opts export.Options) error {
	if r.Err != nil {
		return r.Err
	}
	if _, err := export.WritePNGs(dir, label, r.Map, opts); err != nil {
		return err
	}

	section, err := cfg.section(kind)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(section)
	if err != nil {
		return fmt.Errorf("failed to marshal %s config: %w", label, err)
	}
	path := filepath.Join(dir, label+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
