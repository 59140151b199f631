package main

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestWheelNormalizer(t *testing.T) {
	interval := 10 * time.Millisecond
	testCases := map[string]struct {
		pre       []float64
		input     []float64
		expected  []float64
		tolerance float64
	}{
		"BinaryWheel1": {
			pre:      []float64{1, 1, -1, 0, -1, -1},
			input:    []float64{1, -1, 0},
			expected: []float64{100, -100, 0},
		},
		"BinaryWheel10": {
			pre:      []float64{10, 10, -10, 0, -10, -10},
			input:    []float64{10, -10, 0},
			expected: []float64{100, -100, 0},
		},
		"AnalogWheel3": {
			pre:       []float64{2, 4, 3, 0, -1, 2},
			input:     []float64{3, -2, 0},
			expected:  []float64{12.3, -8.6, 0},
			tolerance: 1,
		},
		"AnalogWheel30": {
			pre:       []float64{20, 40, 30, 0, -10, 20},
			input:     []float64{30, -20, 0},
			expected:  []float64{12.3, -8.6, 0},
			tolerance: 1,
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			clk := &fakeClock{t: time.Unix(1000, 0)}
			wn := &wheelNormalizer{now: clk.now, step: 100}
			for _, v := range tt.pre {
				clk.advance(interval)
				wn.Normalize(v)
			}
			for i, v := range tt.input {
				clk.advance(interval)
				o, ok := wn.Normalize(v)
				if !ok {
					t.Error("Normalizer should be ready")
					continue
				}
				if o < tt.expected[i]-tt.tolerance || tt.expected[i]+tt.tolerance < o {
					t.Errorf("Expected: %f, got: %f", tt.expected[i], o)
					continue
				}
			}
		})
	}
}

func TestWheelNormalizer_NotReady(t *testing.T) {
	testCases := map[string]struct {
		input    float64
		expected float64
	}{
		"SmallDelta":    {input: 3, expected: 3},
		"NotchDelta":    {input: -100, expected: -100},
		"ClampPositive": {input: 1000, expected: 100},
		"ClampNegative": {input: -250, expected: -100},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			wn := newWheelNormalizer(100)
			o, ok := wn.Normalize(tt.input)
			if ok {
				t.Error("Normalizer must not be ready after the first event")
			}
			if o != tt.expected {
				t.Errorf("Expected: %f, got: %f", tt.expected, o)
			}
		})
	}
}
