package tiepoint

import (
	"github.com/samber/lo"
)

// Vector2 is a 2-D value carried as the decimal text it was read with.
type Vector2 struct {
	X string
	Y string
}

// Vector3 is a 3-D value carried as the decimal text it was read with.
type Vector3 struct {
	X string
	Y string
	Z string
}

// Observation is one image-side observation of a track's 3-D point.
type Observation struct {
	ID              int
	Key             int
	CameraID        string
	Pixel           Vector2
	InitialResidual Vector2
	FinalResidual   Vector2
}

// Track is a 3-D point consolidated across every stereo tie sharing its id.
type Track struct {
	ID           string
	InitialXYZ   Vector3
	FinalXYZ     Vector3
	Observations []*Observation
}

// HasKey reports whether the track already holds an observation from the image with key.
func (t *Track) HasKey(key int) bool {
	return lo.ContainsBy(t.Observations, func(o *Observation) bool {
		return o.Key == key
	})
}

// Tracks is an ordered set of tracks. Tracks are kept in the order their ids were first seen.
type Tracks struct {
	order []*Track
	byID  map[string]*Track
}

func newTracks() *Tracks {
	return &Tracks{byID: map[string]*Track{}}
}

// All returns every track in first-encounter order.
func (ts *Tracks) All() []*Track {
	return ts.order
}

// Get returns the track with the given id.
func (ts *Tracks) Get(id string) (*Track, bool) {
	t, ok := ts.byID[id]
	return t, ok
}

// Len returns the number of tracks.
func (ts *Tracks) Len() int {
	return len(ts.order)
}

// Observations returns the total number of observations across all tracks.
func (ts *Tracks) Observations() int {
	return lo.SumBy(ts.order, func(t *Track) int {
		return len(t.Observations)
	})
}

func (ts *Tracks) add(t *Track) {
	ts.order = append(ts.order, t)
	ts.byID[t.ID] = t
}

// Sequence hands out point ids. Ids start at 0 and increase by one per call to Next.
type Sequence struct {
	next int
}

// NewSequence returns a sequence whose first id is 0.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next id.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}

// Count returns how many ids have been handed out.
func (s *Sequence) Count() int {
	return s.next
}

// side names the fields of one half of a stereo tie.
type side struct {
	name            string
	keyField        string
	key             *string
	pixel           *Sample
	initialResidual *Sample
	finalResidual   *Sample
}

func (tie *Tie) left() side {
	return side{
		name:            "left",
		keyField:        "left_key",
		key:             tie.LeftKey,
		pixel:           tie.Left,
		initialResidual: tie.LeftInitResidual,
		finalResidual:   tie.LeftFinalResidual,
	}
}

func (tie *Tie) right() side {
	return side{
		name:            "right",
		keyField:        "right_key",
		key:             tie.RightKey,
		pixel:           tie.Right,
		initialResidual: tie.RightInitResidual,
		finalResidual:   tie.RightFinalResidual,
	}
}

// BuildTracks consolidates stereo ties into tracks keyed by track id.
//
// The first tie of a track sets its initial and final coordinates and contributes its left and
// right observations. Later ties of the same track contribute only the sides whose image key the
// track has not seen yet. Every appended observation takes the next id from seq, so the same
// ties and a fresh sequence always produce the same ids.
func BuildTracks(ties []Tie, images ImageIndex, seq *Sequence) (*Tracks, error) {
	tracks := newTracks()
	for i := range ties {
		tie := &ties[i]
		if tie.Track == nil {
			return nil, NewMissingFieldError("track")
		}
		if tie.Track.ID == nil {
			return nil, NewMissingFieldError("track id")
		}

		track, ok := tracks.Get(*tie.Track.ID)
		if !ok {
			var err error
			if track, err = newTrack(*tie.Track.ID, tie); err != nil {
				return nil, err
			}
			tracks.add(track)
		}

		for _, s := range []side{tie.left(), tie.right()} {
			key, err := parseKey(s.keyField, s.key)
			if err != nil {
				return nil, err
			}
			if track.HasKey(key) {
				continue
			}
			obs, err := s.observation(key, images)
			if err != nil {
				return nil, err
			}
			obs.ID = seq.Next()
			track.Observations = append(track.Observations, obs)
		}
	}
	return tracks, nil
}

func newTrack(id string, tie *Tie) (*Track, error) {
	// both sides of a new track are validated before anything is recorded
	for _, s := range []side{tie.left(), tie.right()} {
		if _, err := parseKey(s.keyField, s.key); err != nil {
			return nil, err
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
	}
	initial, err := xyz("init_xyz", tie.InitXYZ)
	if err != nil {
		return nil, err
	}
	final, err := xyz("final_xyz", tie.FinalXYZ)
	if err != nil {
		return nil, err
	}
	return &Track{ID: id, InitialXYZ: initial, FinalXYZ: final}, nil
}

func (s side) validate() error {
	if _, err := sample(s.name, s.pixel); err != nil {
		return err
	}
	if _, err := sample(s.name+"_init_residual", s.initialResidual); err != nil {
		return err
	}
	if _, err := sample(s.name+"_final_residual", s.finalResidual); err != nil {
		return err
	}
	return nil
}

func (s side) observation(key int, images ImageIndex) (*Observation, error) {
	pixel, err := sample(s.name, s.pixel)
	if err != nil {
		return nil, err
	}
	initial, err := sample(s.name+"_init_residual", s.initialResidual)
	if err != nil {
		return nil, err
	}
	final, err := sample(s.name+"_final_residual", s.finalResidual)
	if err != nil {
		return nil, err
	}
	cameraID, err := images.Resolve(key)
	if err != nil {
		return nil, err
	}
	return &Observation{
		Key:             key,
		CameraID:        cameraID,
		Pixel:           pixel,
		InitialResidual: initial,
		FinalResidual:   final,
	}, nil
}

func sample(field string, s *Sample) (Vector2, error) {
	if s == nil {
		return Vector2{}, NewMissingFieldError(field)
	}
	if s.Samp == nil {
		return Vector2{}, NewMissingFieldError(field + " samp")
	}
	if s.Line == nil {
		return Vector2{}, NewMissingFieldError(field + " line")
	}
	return Vector2{X: *s.Samp, Y: *s.Line}, nil
}

func xyz(field string, v *XYZ) (Vector3, error) {
	if v == nil {
		return Vector3{}, NewMissingFieldError(field)
	}
	for i, c := range []*string{v.X, v.Y, v.Z} {
		if c == nil {
			return Vector3{}, NewMissingFieldError(field + " " + []string{"x", "y", "z"}[i])
		}
	}
	return Vector3{X: *v.X, Y: *v.Y, Z: *v.Z}, nil
}
