package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/nasa-ammos/vector-convert/config"
	"github.com/nasa-ammos/vector-convert/convert"
)

// ConvertAction is the corresponding Action for 'convert'.
func ConvertAction(c *cli.Context) error {
	if c.Args().Present() {
		return errors.Errorf("unexpected arguments %v", c.Args().Slice())
	}

	cfg, path, err := convertConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(path); err != nil {
		return err
	}
	for _, output := range []string{cfg.TracksPath(), cfg.CamerasPath()} {
		if err := checkNotInput(output, cfg.Tiepoints, cfg.Navigation); err != nil {
			return err
		}
	}
	logger := newLogger(c)
	res, err := convert.Run(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "Wrote %d tracks (%d points) to %s", res.Tracks, res.Observations, res.TracksPath)
	printf(c.App.Writer, "Wrote %d cameras to %s", res.Cameras, res.CamerasPath)
	return nil
}

// convertConfig reads the --config file, if any, and overlays the path flags on it. The
// returned path names the config's source for validation errors.
func convertConfig(c *cli.Context) (*config.Config, string, error) {
	cfg := config.Default()
	source := "flags"
	if path := c.String(configFlag); path != "" {
		read, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		cfg, source = read, path
	}
	cfg.Merge(&config.Config{
		Tiepoints:   c.Path(tiepointsFlag),
		Navigation:  c.Path(navigationFlag),
		Images:      c.Path(imagesFlag),
		Labels:      c.Path(vicarFlag),
		OutputDir:   c.Path(outputDirFlag),
		TracksFile:  c.String(tracksFlag),
		CamerasFile: c.String(camerasFlag),
	})
	return cfg, source, nil
}
