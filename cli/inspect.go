package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/nasa-ammos/vector-convert/tiepoint"
	"github.com/nasa-ammos/vector-convert/vector"
)

// InspectAction is the corresponding Action for 'inspect'.
func InspectAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("inspect takes exactly one VECTOR document")
	}
	doc, err := vector.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	var out string
	switch doc.Format {
	case vector.FormatTrack:
		out, err = trackTable(doc)
	case vector.FormatCamera:
		out, err = cameraTable(doc)
	}
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s document in %s", doc.Format, doc.ReferenceFrame)
	printf(c.App.Writer, "%s", out)
	return nil
}

func trackTable(doc *vector.Document) (string, error) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Track", "Points", "Cameras", "Initial Residual", "Final Residual", "Improved"})

	var all []*tiepoint.Observation
	for i := range doc.Tracks {
		track := &doc.Tracks[i]
		observations, err := track.Observations()
		if err != nil {
			return "", err
		}
		stats, err := tiepoint.SummarizeResiduals(observations)
		if err != nil {
			return "", errors.Wrapf(err, "track %q", track.ID)
		}
		cameras := map[string]struct{}{}
		for _, o := range observations {
			cameras[o.CameraID] = struct{}{}
		}
		t.AppendRow(table.Row{
			track.ID,
			stats.Count,
			len(cameras),
			fmt.Sprintf("%.3f", stats.InitialMean),
			fmt.Sprintf("%.3f", stats.FinalMean),
			fmt.Sprintf("%.0f%%", 100*stats.ImprovedFraction),
		})
		all = append(all, observations...)
	}

	total, err := tiepoint.SummarizeResiduals(all)
	if err != nil {
		return "", err
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d tracks", len(doc.Tracks)),
		total.Count,
		"",
		fmt.Sprintf("%.3f ± %.3f", total.InitialMean, total.InitialStdDev),
		fmt.Sprintf("%.3f ± %.3f", total.FinalMean, total.FinalStdDev),
		fmt.Sprintf("%.0f%%", 100*total.ImprovedFraction),
	})
	return t.Render(), nil
}

func cameraTable(doc *vector.Document) (string, error) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Camera", "Image", "Model", "Pose", "Frames", "Translation", "Rotation (x,y,z,w)"})
	for i := range doc.Cameras {
		cam := &doc.Cameras[i]
		for _, p := range []struct {
			name string
			pose *vector.Pose
		}{
			{"initial", &cam.Initial},
			{"final", &cam.Final},
		} {
			chain := p.pose.Chain()
			pose, err := chain.Pose()
			if err != nil {
				return "", errors.Wrapf(err, "%s pose of camera %q", p.name, cam.ID)
			}
			frames := []string{p.pose.ReferenceFrame}
			for _, hop := range chain {
				frames = append(frames, hop.Reference)
			}
			o := pose.Orientation
			t.AppendRow(table.Row{
				cam.ID,
				cam.Image,
				cam.Model,
				p.name,
				strings.Join(frames, " > "),
				fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", pose.Point.X, pose.Point.Y, pose.Point.Z),
				fmt.Sprintf("%.4f, %.4f, %.4f, %.4f", o.Imag, o.Jmag, o.Kmag, o.Real),
			})
		}
	}
	return t.Render(), nil
}
