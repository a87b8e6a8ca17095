package grid

import (
	"github.com/matzehuels/stackgrid/pkg/errors"
)

// eps absorbs rounding when checking for negative free space.
const eps = 1e-9

// trackSize is the working state of one track during resolution.
// base and maxGrowth are meaningless until sized is set; both are always
// assigned together. maxGrowth has no consumer yet and is kept for the
// growth-limit step of the full algorithm.
type trackSize struct {
	base      float64
	maxGrowth float64
	sized     bool
}

func (t *trackSize) set(size float64) {
	t.base = size
	t.maxGrowth = size
	t.sized = true
}

// initializeTracks sizes every percentage track against axisLength and
// leaves auto tracks unsized.
func initializeTracks(specs []CellSize, axisLength float64) []trackSize {
	tracks := make([]trackSize, len(specs))
	for i, spec := range specs {
		if p, ok := spec.Percent(); ok {
			tracks[i].set(p / 100 * axisLength)
		}
	}
	return tracks
}

// freeSpace returns axisLength minus the base sizes of sized tracks, and the
// number of tracks still unsized.
func freeSpace(tracks []trackSize, axisLength float64) (free float64, unsized int) {
	free = axisLength
	for _, t := range tracks {
		if t.sized {
			free -= t.base
		} else {
			unsized++
		}
	}
	return free, unsized
}

// distributeFreeSpace splits the free space evenly between unsized tracks.
// With no unsized tracks the free space is left unused.
func distributeFreeSpace(tracks []trackSize, axisLength float64) {
	free, unsized := freeSpace(tracks, axisLength)
	if unsized == 0 {
		return
	}
	autoSize := free / float64(unsized)
	for i := range tracks {
		if !tracks[i].sized {
			tracks[i].set(autoSize)
		}
	}
}

func baseSizes(tracks []trackSize) []float64 {
	sizes := make([]float64, len(tracks))
	for i, t := range tracks {
		sizes[i] = t.base
	}
	return sizes
}

// Resolve returns the base size of every track on one axis of the given
// length, in track order.
//
// Percentage tracks resolve to p/100*axisLength regardless of their
// neighbours. Auto tracks share what is left evenly. Inputs are not
// validated: percentages over 100% produce negative auto sizes, and an axis
// with no auto tracks simply leaves any free space unassigned.
func Resolve(specs []CellSize, axisLength float64) []float64 {
	tracks := initializeTracks(specs, axisLength)
	distributeFreeSpace(tracks, axisLength)
	return baseSizes(tracks)
}

// ResolveStrict is Resolve with input checks. It fails with
// [errors.ErrCodeInvalidTracks] when specs is empty, when a percentage lies
// outside [0, 100], or when the percentages leave negative free space.
func ResolveStrict(specs []CellSize, axisLength float64) ([]float64, error) {
	if len(specs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTracks, "no tracks defined")
	}
	for i, spec := range specs {
		if p, ok := spec.Percent(); ok && (p < 0 || p > 100) {
			return nil, errors.New(errors.ErrCodeInvalidTracks, "track %d: percentage %g outside [0, 100]", i, p)
		}
	}

	tracks := initializeTracks(specs, axisLength)
	if free, _ := freeSpace(tracks, axisLength); free < -eps {
		return nil, errors.New(errors.ErrCodeInvalidTracks, "percentages exceed axis length by %g", -free)
	}
	distributeFreeSpace(tracks, axisLength)
	return baseSizes(tracks), nil
}
