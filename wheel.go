package main

import (
	"math"
	"time"
)

const (
	binaryDetectCnt = 4
	initialMaxDelta = 10

	// continuous scrolling at the peak rate counts as this many notches per second
	peakNotchRate = 10
)

type wheelType int

const (
	wheelTypeNone wheelType = iota
	wheelTypeBinary
	wheelTypeContinuous
)

// wheelNormalizer maps raw wheel deltas of notched mice and trackpads
// onto multiples of step.
// Notched wheels repeat the same absolute delta and are reduced to +-step,
// continuous ones are scaled by their recent peak rate.
// Until the wheel is classified, deltas are clamped to one step.
type wheelNormalizer struct {
	now  func() time.Time
	step float64

	ready    bool
	eventCnt int

	wheelType wheelType
	maxRate   float64

	sameCnt int
	lastAbs float64

	timePrev time.Time
	dSum     float64
}

func newWheelNormalizer(step float64) *wheelNormalizer {
	return &wheelNormalizer{now: time.Now, step: step}
}

// Normalize returns the normalized delta and whether enough events have
// been observed to classify the wheel.
func (n *wheelNormalizer) Normalize(d float64) (float64, bool) {
	if n.eventCnt > binaryDetectCnt {
		n.ready = true
	} else {
		n.eventCnt++
	}

	dAbs := d
	if dAbs < 0 {
		dAbs = -d
	}
	if dAbs == 0 {
		return 0, n.ready
	}

	if n.lastAbs == dAbs {
		n.sameCnt++
	} else {
		n.sameCnt = 0
	}
	n.lastAbs = dAbs

	typePrev := n.wheelType
	if n.sameCnt > binaryDetectCnt {
		n.wheelType = wheelTypeBinary
	} else {
		n.wheelType = wheelTypeContinuous
	}
	if n.wheelType != typePrev {
		n.maxRate = initialMaxDelta
	}

	n.updateRate(d)

	switch {
	case !n.ready:
		if dAbs > n.step {
			return math.Copysign(n.step, d), false
		}
		return d, false
	case n.wheelType == wheelTypeBinary:
		return math.Copysign(n.step, d), true
	default:
		return d * peakNotchRate / n.maxRate * n.step, true
	}
}

func (n *wheelNormalizer) updateRate(d float64) {
	now := n.now()
	n.dSum += d

	dt := now.Sub(n.timePrev).Seconds()
	if dt > 0 {
		if dt > 0.1 {
			dt = 0.1
		}
		rate := n.dSum / dt
		if rate < 0 {
			rate = -rate
		}
		n.dSum = 0
		n.timePrev = now

		if n.maxRate < rate {
			// LPF to suppress spikes
			n.maxRate = n.maxRate*0.5 + rate*0.5
		}
		n.maxRate *= 0.95
	}

	if n.maxRate < 1 {
		n.maxRate = 1
	}
}
