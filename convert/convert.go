// Package convert runs one conversion of a navigation run into a VECTOR track document and a
// VECTOR camera document.
package convert

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nasa-ammos/vector-convert/camera"
	"github.com/nasa-ammos/vector-convert/catalog"
	"github.com/nasa-ammos/vector-convert/config"
	"github.com/nasa-ammos/vector-convert/logging"
	"github.com/nasa-ammos/vector-convert/navigation"
	"github.com/nasa-ammos/vector-convert/tiepoint"
	"github.com/nasa-ammos/vector-convert/utils"
	"github.com/nasa-ammos/vector-convert/vector"
)

// Result describes a finished conversion.
type Result struct {
	RunID          string
	ReferenceFrame string
	Tracks         int
	Observations   int
	Cameras        int
	TracksPath     string
	CamerasPath    string
}

// Run converts the inputs named by cfg. Both documents are built in memory before either is
// written, so a failed run leaves no output behind.
func Run(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Result, error) {
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	res := &Result{
		RunID:       uuid.NewString(),
		TracksPath:  cfg.TracksPath(),
		CamerasPath: cfg.CamerasPath(),
	}
	if info, err := os.Stat(cfg.OutputDir); err != nil {
		return nil, errors.Wrap(err, "output directory")
	} else if !info.IsDir() {
		return nil, errors.Errorf("output directory %q is not a directory", cfg.OutputDir)
	}
	logger = logger.Sublogger("convert")
	logger.Infow("starting conversion", "run", res.RunID, "tiepoints", cfg.Tiepoints, "navigation", cfg.Navigation)

	tracksDoc, err := buildTracks(cfg, logger, res)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	camerasDoc, err := buildCameras(ctx, cfg, logger, res)
	if err != nil {
		return nil, err
	}

	logger.Debugw("writing outputs", "dir", cfg.OutputDir)
	if err := vector.WriteFile(res.TracksPath, tracksDoc); err != nil {
		return nil, err
	}
	if err := vector.WriteFile(res.CamerasPath, camerasDoc); err != nil {
		// the camera document could not be written so the track document is withdrawn too
		utils.RemoveFileNoError(res.TracksPath)
		return nil, err
	}

	logger.Infow("conversion finished",
		"run", res.RunID,
		"tracks", res.Tracks,
		"observations", res.Observations,
		"cameras", res.Cameras,
		"tracks_file", res.TracksPath,
		"cameras_file", res.CamerasPath,
	)
	return res, nil
}

func buildTracks(cfg *config.Config, logger logging.Logger, res *Result) (*vector.Document, error) {
	doc, err := tiepoint.ReadFile(cfg.Tiepoints)
	if err != nil {
		return nil, err
	}
	res.ReferenceFrame, err = doc.ReferenceFrame(cfg.FrameSuffix())
	if err != nil {
		return nil, err
	}
	images, err := doc.ImageIndex()
	if err != nil {
		return nil, err
	}

	seq := tiepoint.NewSequence()
	tracks, err := tiepoint.BuildTracks(doc.Ties(), images, seq)
	if err != nil {
		return nil, errors.Wrapf(err, "building tracks from %q", cfg.Tiepoints)
	}
	res.Tracks = tracks.Len()
	res.Observations = seq.Count()
	logger.Infow("built tracks",
		"reference_frame", res.ReferenceFrame,
		"ties", len(doc.Ties()),
		"tracks", res.Tracks,
		"observations", res.Observations,
	)
	if skipped := 2*len(doc.Ties()) - res.Observations; skipped > 0 {
		logger.Debugw("skipped repeated observations", "count", skipped)
	}
	return vector.FromTracks(res.ReferenceFrame, tracks), nil
}

func buildCameras(ctx context.Context, cfg *config.Config, logger logging.Logger, res *Result) (*vector.Document, error) {
	nav, err := navigation.ReadFile(cfg.Navigation)
	if err != nil {
		return nil, err
	}
	files, err := catalog.New(ctx, catalog.Options{
		ImagesDir:       cfg.Images,
		LabelsDir:       cfg.Labels,
		ImageExtensions: cfg.ImageExtensions,
		LabelExtensions: cfg.LabelExtensions,
		PrefixLength:    cfg.PrefixLength(),
	}, logger.Sublogger("catalog"))
	if err != nil {
		return nil, err
	}
	logger.Infow("found input files", "images", len(files.Images()), "labels", len(files.LabelFiles()))

	assembler := camera.NewAssembler(files, res.ReferenceFrame, logger.Sublogger("camera"))
	cameras, err := assembler.AssembleAll(ctx, nav.Solutions)
	if err != nil {
		return nil, errors.Wrapf(err, "assembling cameras from %q", cfg.Navigation)
	}
	res.Cameras = len(cameras)
	logger.Infow("assembled cameras", "cameras", res.Cameras)
	return vector.FromCameras(res.ReferenceFrame, cameras), nil
}
