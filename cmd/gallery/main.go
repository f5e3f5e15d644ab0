// Command gallery loads images and shows them in four-column grids.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nvr-ai/go-gallery/config"
	"github.com/nvr-ai/go-gallery/grid"
	"github.com/nvr-ai/go-gallery/images"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool

	logger *zap.Logger
	cfg    *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, &app{}, os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs the root command with args and returns the process exit
// code. The logger is synced on every path, failures included.
func execute(ctx context.Context, a *app, args []string) int {
	defer func() {
		if a.logger != nil {
			_ = a.logger.Sync()
		}
	}()

	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "gallery",
		Short:        "Load images and show them in four-column grids",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger == nil {
				zapConfig := zap.NewProductionConfig()
				if a.verbose {
					zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				logger, err := zapConfig.Build()
				if err != nil {
					return errors.Wrap(err, "failed to initialize logger")
				}
				a.logger = logger
			}

			if a.configPath == "" {
				a.cfg = config.Default()
				return nil
			}
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger.Debug("loaded config", zap.String("path", a.configPath))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newShowCmd(a), newLoadCmd(a))
	return root
}

type showFlags struct {
	image  string
	images []string
	folder string
	out    string
	format string
	filter string
	window bool
}

func newShowCmd(a *app) *cobra.Command {
	var f showFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show images as grid figures",
		Long: `Show images given as a single file, a list of files and/or a folder in
figures of four columns each. Figures are written to image files, or shown
in a window with --window (press any key for the next figure).`,
		Example: `  gallery show --folder ./frames --out ./figures
  gallery show --image a.png --images b.jpg,c.jpg --window`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, a, f)
		},
	}

	cmd.Flags().StringVar(&f.image, "image", "", "A single image file")
	cmd.Flags().StringSliceVar(&f.images, "images", nil, "A list of image files")
	cmd.Flags().StringVar(&f.folder, "folder", "", "A folder of images")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Directory figures are written to (overrides config)")
	cmd.Flags().StringVar(&f.format, "format", "", "Figure file format: png, jpeg, gif, bmp, webp (overrides config)")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Resampling filter: nearest, bilinear, bicubic, mitchell, lanczos (overrides config)")
	cmd.Flags().BoolVar(&f.window, "window", false, "Show figures in a window instead of writing files")

	return cmd
}

func runShow(cmd *cobra.Command, a *app, f showFlags) error {
	cfg := *a.cfg
	if f.out != "" {
		cfg.Output.Mode = config.OutputFile
		cfg.Output.Dir = f.out
	}
	if f.format != "" {
		cfg.Output.Format = images.ImageFormat(f.format)
	}
	if f.filter != "" {
		cfg.Filter = images.ResampleFilter(f.filter)
	}
	if f.window {
		cfg.Output.Mode = config.OutputWindow
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	input := grid.Input{Folder: f.folder}
	if f.image != "" {
		item := grid.FromPath(f.image)
		input.Image = &item
	}
	if len(f.images) > 0 {
		input.Images = grid.FromPaths(f.images...)
	}

	displayer, err := newDisplayer(cfg.Output)
	if err != nil {
		return err
	}
	defer displayer.Close()

	opts := cfg.GridOptions()
	opts.Logger = a.logger

	shown, err := grid.Display(cmd.Context(), input, displayer, opts)
	if err != nil {
		return errors.Wrap(err, "show")
	}

	if fd, ok := displayer.(*grid.FileDisplayer); ok {
		for _, p := range fd.Paths() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	}
	a.logger.Info("done", zap.Int("figures", shown))

	return nil
}

func newDisplayer(out config.Output) (grid.Displayer, error) {
	if out.Mode == config.OutputWindow {
		return grid.NewWindowDisplayer(out.Title), nil
	}
	return grid.NewFileDisplayer(out.Dir, out.Format, out.Prefix)
}

func newLoadCmd(a *app) *cobra.Command {
	var extensions []string

	cmd := &cobra.Command{
		Use:   "load DIR",
		Short: "Load every image in a folder and print its array shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(extensions) == 0 {
				extensions = a.cfg.LoadExtensions
			}

			loaded, err := images.LoadFolder(args[0], images.FolderOptions{
				Extensions: extensions,
				Logger:     a.logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range loaded {
				fmt.Fprintf(out, "%s %dx%d %d\n", filepath.Base(l.Path), l.Width(), l.Height(), images.Channels(l.Image))
			}
			fmt.Fprintf(out, "loaded %d images\n", len(loaded))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "Accepted extensions, e.g. .jpg,.png (overrides config)")
	return cmd
}
