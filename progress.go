package nonnon

import "math"

// Step names a stage of a pipeline run.
type Step string

// Pipeline steps in execution order.
const (
	StepGlyphs   Step = "glyphs"
	StepAssemble Step = "assemble"
	StepIntro    Step = "intro"
	StepFrames   Step = "frames"
	StepEncode   Step = "encode"
)

// stepWeights are the shares of the overall percentage; they sum to 100.
var stepWeights = []struct {
	step   Step
	weight float64
}{
	{StepGlyphs, 15},
	{StepAssemble, 10},
	{StepIntro, 5},
	{StepFrames, 55},
	{StepEncode, 15},
}

// Progress is one report of a running pipeline.
type Progress struct {
	// Step is the stage being worked on.
	Step Step

	// Percent is the overall completion, 0..100. It never decreases
	// within one run.
	Percent int
}

// ProgressFunc receives progress reports. It is called synchronously from
// the goroutine running the pipeline.
type ProgressFunc func(Progress)

// progressTracker turns per-step fractions into overall percentages.
// The weight of the skip step, if set, is carried into the step after it.
type progressTracker struct {
	fn   ProgressFunc
	skip Step
	last int
}

// report records that step is done fraction (0..1) of its work.
func (t *progressTracker) report(step Step, fraction float64) {
	if t.fn == nil || step == t.skip {
		return
	}
	fraction = math.Max(0, math.Min(1, fraction))
	base, carry := 0.0, 0.0
	for _, w := range stepWeights {
		if w.step == t.skip {
			carry = w.weight
			continue
		}
		weight := w.weight + carry
		carry = 0
		if w.step == step {
			pct := int(math.Round(base + weight*fraction))
			pct = max(pct, t.last)
			t.last = pct
			t.fn(Progress{Step: step, Percent: pct})
			return
		}
		base += weight
	}
}
