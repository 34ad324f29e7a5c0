package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/proctex/internal/export"
	"github.com/MeKo-Tech/proctex/internal/texture"
	"github.com/MeKo-Tech/proctex/internal/worker"
)

var texturesCmd = &cobra.Command{
	Use:   "textures",
	Short: "Generate texture maps",
	Long: `Generate albedo, normal and ORM maps for the selected kinds.

Each kind is written as <kind>_albedo.png, <kind>_normal.png and
<kind>_orm.png into the output directory. With --preview, tiling kinds also
get a 2x2 seam sheet per layer.`,
	RunE: runTextures,
}

func init() {
	rootCmd.AddCommand(texturesCmd)

	texturesCmd.Flags().String("kinds", "all", "Comma-separated kinds to generate (bark, rock, ground, leaf, twig, all)")
	texturesCmd.Flags().Int("width", 512, "Texture width in pixels")
	texturesCmd.Flags().Int("height", 512, "Texture height in pixels")
	texturesCmd.Flags().Int("workers", 4, "Number of parallel workers")
	texturesCmd.Flags().Bool("progress", true, "Show progress bar")
	texturesCmd.Flags().Bool("preview", false, "Write 2x2 seam previews for tiling kinds")
	texturesCmd.Flags().Int("preview-size", 512, "Edge length of seam previews in pixels")
	texturesCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"textures.kinds", "kinds"},
		{"textures.width", "width"},
		{"textures.height", "height"},
		{"textures.workers", "workers"},
		{"textures.progress", "progress"},
		{"textures.preview", "preview"},
		{"textures.preview_size", "preview-size"},
		{"textures.png_compression", "png-compression"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, texturesCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runTextures(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	outputDir := viper.GetString("output-dir")
	width := viper.GetInt("textures.width")
	height := viper.GetInt("textures.height")
	workers := viper.GetInt("textures.workers")
	showProgress := viper.GetBool("textures.progress")

	kinds, err := parseKinds(viper.GetString("textures.kinds"))
	if err != nil {
		return err
	}
	if err := texture.ValidateDimensions(width, height); err != nil {
		return err
	}
	compression, err := parseCompression(viper.GetString("textures.png_compression"))
	if err != nil {
		return err
	}
	cfgs, err := loadConfigs(viper.GetViper())
	if err != nil {
		return err
	}

	opts := export.Options{
		Compression: compression,
		Preview:     viper.GetBool("textures.preview"),
		PreviewSize: viper.GetInt("textures.preview_size"),
	}

	tasks := make([]worker.Task, 0, len(kinds))
	for _, kind := range kinds {
		gen, err := cfgs.generator(kind)
		if err != nil {
			return err
		}
		tasks = append(tasks, worker.Task{Name: kind, Generator: gen, Width: width, Height: height})
	}

	logger.Info("Starting texture generation",
		"kinds", kinds,
		"width", width,
		"height", height,
		"workers", workers,
		"output_dir", outputDir,
		"preview", opts.Preview,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	progress := worker.NewProgress(len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers:    workers,
		OnProgress: progress.Callback(),
		Sink: func(ctx context.Context, task worker.Task, m *texture.Map) error {
			paths, err := export.WritePNGs(outputDir, task.Name, m, opts)
			if err != nil {
				return err
			}
			logger.Debug("Wrote texture", "kind", task.Name, "files", paths)
			return nil
		},
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Texture generation failed", "kind", r.Task.Name, "error", r.Err)
			continue
		}
		logger.Debug("Texture generated", "kind", r.Task.Name, "elapsed", r.Elapsed)
	}

	logger.Info(progress.Summary())

	if failedCount > 0 {
		return fmt.Errorf("%d textures failed to generate", failedCount)
	}
	return nil
}
