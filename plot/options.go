package plot

// Option is an option for sampling a curve.
type Option interface {
	sampleOption(sampler) sampler
}

type (
	samplesopt int
	workersopt int
)

// sampler holds the settings of one Sample call.
type sampler struct {
	// samples is the number of points. Zero means the plot's count.
	samples int
	// workers is the number of goroutines evaluating points.
	workers int
}

// Samples overrides the number of points sampled. Counts below 1 are
// ignored, and counts above MaxSamples are reduced to it.
func Samples(n int) Option {
	return samplesopt(n)
}

func (o samplesopt) sampleOption(s sampler) sampler {
	switch {
	case o > MaxSamples:
		s.samples = MaxSamples
	case o > 0:
		s.samples = int(o)
	}
	return s
}

// Workers sets the number of goroutines that evaluate points. Each takes a
// contiguous range of the sweep. The result is the same for any count. The
// default is 1.
func Workers(n int) Option {
	return workersopt(n)
}

func (o workersopt) sampleOption(s sampler) sampler {
	if o > 0 {
		s.workers = int(o)
	}
	return s
}
