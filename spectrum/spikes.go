package spectrum

import (
	"math"

	"github.com/cwbudde/algo-raman/dsp/core"
)

// DetectSpikes flags detector spikes in the raw signal and returns the
// flagged indices in ascending order.
//
// For every window i, i+1, i+2 the means prev = (y[i]+y[i+1])/2 and
// cur = (y[i+1]+y[i+2])/2 are compared; when |prev-cur|/cur exceeds threshold
// all three indices are flagged. Windows with cur == 0 are never flagged.
// Previous detections are discarded.
func (s *Spectrum) DetectSpikes(threshold float64) ([]int, error) {
	if !(threshold > 0) || math.IsInf(threshold, 0) {
		return nil, ErrInvalidThreshold
	}

	y := s.signal
	var flagged []int
	for i := 0; i+2 < len(y); i++ {
		prev := 0.5 * (y[i] + y[i+1])
		cur := 0.5 * (y[i+1] + y[i+2])
		if cur == 0 {
			continue
		}
		if math.Abs(prev-cur)/cur > threshold {
			flagged = append(flagged, i, i+1, i+2)
		}
	}

	s.spikes = core.SortedUnique(flagged)
	return s.Spikes(), nil
}

// RemoveSpikes deletes every flagged point from the axis, signal, baseline
// and corrected signal, clears the spike set and returns the number of
// removed points.
func (s *Spectrum) RemoveSpikes() int {
	if len(s.spikes) == 0 {
		return 0
	}
	before := len(s.axis)

	s.axis = core.DeleteIndices(s.axis, s.spikes)
	s.signal = core.DeleteIndices(s.signal, s.spikes)
	s.baseline = core.DeleteIndices(s.baseline, s.spikes)
	s.corrected = core.DeleteIndices(s.corrected, s.spikes)
	s.spikes = nil

	return before - len(s.axis)
}
