// Package config loads gallery settings from YAML.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-gallery/grid"
	"github.com/nvr-ai/go-gallery/images"
)

// OutputMode selects how figures are shown.
type OutputMode string

const (
	// OutputFile writes figures to image files.
	OutputFile OutputMode = "file"
	// OutputWindow shows figures in an OpenCV window.
	OutputWindow OutputMode = "window"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the gallery CLI.
type Config struct {
	// Figure is the geometry of one grid row.
	Figure grid.Layout `json:"figure" yaml:"figure"`
	// Filter is the resampling filter name.
	Filter images.ResampleFilter `json:"filter" yaml:"filter"`
	// Output controls where figures go.
	Output Output `json:"output" yaml:"output"`
	// LoadExtensions are used when loading a folder into arrays.
	LoadExtensions []string `json:"loadExtensions" yaml:"loadExtensions"`
	// GridExtensions are used when a grid is built from a folder.
	GridExtensions []string `json:"gridExtensions" yaml:"gridExtensions"`
}

// Output describes the figure destination.
type Output struct {
	// Mode is "file" or "window".
	Mode OutputMode `json:"mode" yaml:"mode"`
	// Dir is the directory figures are written to in file mode.
	Dir string `json:"dir" yaml:"dir"`
	// Format is the file format in file mode.
	Format images.ImageFormat `json:"format" yaml:"format"`
	// Prefix is the figure file name prefix in file mode.
	Prefix string `json:"prefix" yaml:"prefix"`
	// Title is the window title in window mode.
	Title string `json:"title" yaml:"title"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Figure: grid.DefaultLayout(),
		Filter: images.BilinearFilter,
		Output: Output{
			Mode:   OutputFile,
			Dir:    "figures",
			Format: images.FormatPNG,
			Prefix: "figure",
			Title:  "gallery",
		},
		LoadExtensions: append([]string(nil), images.DefaultLoadExtensions...),
		GridExtensions: append([]string(nil), images.GridExtensions...),
	}
}

// Load reads a YAML file over the defaults and validates the result.
//
// Arguments:
//   - path: The YAML file.
//
// Returns:
//   - *Config: The merged configuration.
//   - error: An error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the figure geometry, filter, output and extension lists,
// normalising the filter and format names in place.
func (c *Config) Validate() error {
	if err := c.Figure.Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	filter, err := images.ParseFilter(string(c.Filter))
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	c.Filter = filter

	switch c.Output.Mode {
	case OutputFile:
		if c.Output.Dir == "" {
			return errors.Wrap(ErrInvalidConfig, "output dir is required in file mode")
		}
		format, err := images.ParseFormat(string(c.Output.Format))
		if err != nil {
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
		c.Output.Format = format
	case OutputWindow:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown output mode %q", c.Output.Mode)
	}

	if len(c.LoadExtensions) == 0 {
		return errors.Wrap(ErrInvalidConfig, "loadExtensions is empty")
	}
	if len(c.GridExtensions) == 0 {
		return errors.Wrap(ErrInvalidConfig, "gridExtensions is empty")
	}

	return nil
}

// GridOptions converts the configuration into grid options.
func (c *Config) GridOptions() grid.Options {
	return grid.Options{
		Layout:     c.Figure,
		Filter:     c.Filter,
		Extensions: c.GridExtensions,
	}
}
