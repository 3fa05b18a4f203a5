package libstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTightDistribution(t *testing.T) {
	var e Estimator
	for i := 0; i < 100; i++ {
		e.Add(500, 100)
	}
	p := e.Estimate()
	assert.Equal(t, 500.0, p.Median)
	assert.Equal(t, 0.0, p.MAD)
	assert.False(t, p.SingleEnd())
}

func TestEstimateTooFewObservationsIsSingleEnd(t *testing.T) {
	var e Estimator
	e.Add(500, 100)
	p := e.Estimate()
	assert.True(t, p.SingleEnd())
}

func TestOverallMaxISizePicksLarger(t *testing.T) {
	p := Params{MaxISizeCutoff: 900, ReadSize: 150}
	assert.Equal(t, int32(900), p.OverallMaxISize())

	p2 := Params{MaxISizeCutoff: 50, ReadSize: 150}
	assert.Equal(t, int32(150), p2.OverallMaxISize())
}
