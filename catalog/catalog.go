// Package catalog finds the image and label files of a conversion and matches them to the image
// ids of navigation solutions.
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/nasa-ammos/vector-convert/camera"
	"github.com/nasa-ammos/vector-convert/logging"
	"github.com/nasa-ammos/vector-convert/utils"
	"github.com/nasa-ammos/vector-convert/vicar"
)

// ErrNoFiles is returned when a directory holds no file with an accepted extension.
var ErrNoFiles = errors.New("failed to find any files")

// AmbiguousMatchError is returned when more than one file matches an image id.
type AmbiguousMatchError struct {
	ImageID    string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("image id %q matches %d files: %s", e.ImageID, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// Find walks root recursively and returns every regular file whose extension matches one of
// extensions, compared case-insensitively, in lexical order.
func Find(root string, extensions []string) ([]string, error) {
	accepted := lo.Map(extensions, func(ext string, _ int) string {
		return strings.ToLower(ext)
	})
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if lo.Contains(accepted, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search %q", root)
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(ErrNoFiles, "searching %q for %s", root, strings.Join(extensions, ", "))
	}
	return files, nil
}

// Match returns the single file whose path contains imageID with its first prefixLength
// characters removed. ok is false when nothing matches.
func Match(files []string, imageID string, prefixLength int) (match string, ok bool, err error) {
	if len(imageID) <= prefixLength {
		return "", false, errors.Errorf("image id %q is not longer than its %d character prefix", imageID, prefixLength)
	}
	suffix := imageID[prefixLength:]
	candidates := lo.Filter(files, func(path string, _ int) bool {
		return strings.Contains(path, suffix)
	})
	switch len(candidates) {
	case 0:
		return "", false, nil
	case 1:
		return candidates[0], true, nil
	default:
		return "", false, &AmbiguousMatchError{ImageID: imageID, Candidates: candidates}
	}
}

// Options configures a Catalog.
type Options struct {
	ImagesDir       string
	LabelsDir       string
	ImageExtensions []string
	LabelExtensions []string
	PrefixLength    int
}

// A Catalog holds the image files and parsed labels of a conversion. Every label is read when
// the catalog is built and none is modified afterwards.
type Catalog struct {
	prefixLength int
	images       []string
	labelFiles   []string
	labels       map[string]*vicar.Label
}

// New finds the image files and reads every label file in parallel. With no LabelsDir the
// catalog has no labels and lookups return a nil label.
func New(ctx context.Context, opts Options, logger logging.Logger) (*Catalog, error) {
	images, err := Find(opts.ImagesDir, opts.ImageExtensions)
	if err != nil {
		return nil, errors.Wrap(err, "images")
	}
	c := &Catalog{
		prefixLength: opts.PrefixLength,
		images:       images,
		labels:       map[string]*vicar.Label{},
	}
	logger.Debugw("found image files", "dir", opts.ImagesDir, "count", len(images))

	if opts.LabelsDir == "" {
		logger.Warnw("no label directory given, cameras will have no transform chains", "images", opts.ImagesDir)
		return c, nil
	}
	c.labelFiles, err = Find(opts.LabelsDir, opts.LabelExtensions)
	if err != nil {
		return nil, errors.Wrap(err, "labels")
	}
	labels, err := utils.MapInParallel(ctx, c.labelFiles, func(_ context.Context, path string) (*vicar.Label, error) {
		return vicar.ReadFile(path)
	})
	if err != nil {
		return nil, err
	}
	for i, path := range c.labelFiles {
		c.labels[path] = labels[i]
	}
	logger.Debugw("read label files", "dir", opts.LabelsDir, "count", len(c.labelFiles))
	return c, nil
}

// Images returns the image files in lexical order.
func (c *Catalog) Images() []string {
	return c.images
}

// LabelFiles returns the label files in lexical order.
func (c *Catalog) LabelFiles() []string {
	return c.labelFiles
}

// HasLabels reports whether the catalog was built with a label directory.
func (c *Catalog) HasLabels() bool {
	return c.labelFiles != nil
}

// Lookup returns the image file and label matching imageID.
func (c *Catalog) Lookup(imageID string) (string, *vicar.Label, error) {
	image, ok, err := Match(c.images, imageID, c.prefixLength)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, camera.NewNoMatchingImageError(imageID)
	}
	if !c.HasLabels() {
		return image, nil, nil
	}

	labelFile, ok, err := Match(c.labelFiles, imageID, c.prefixLength)
	if err != nil {
		return "", nil, errors.Wrap(err, "labels")
	}
	if !ok {
		return "", nil, errors.Wrap(camera.NewNoMatchingImageError(imageID), "no label file")
	}
	return image, c.labels[labelFile], nil
}
