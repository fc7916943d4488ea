package mock

import "github.com/fwojciec/ratedoc"

var _ ratedoc.HarvestMetrics = (*HarvestMetrics)(nil)

// HarvestMetrics is a mock implementation of ratedoc.HarvestMetrics.
type HarvestMetrics struct {
	DecisionsFoundFn  func(layout ratedoc.Layout, n int)
	ArtifactSavedFn   func(bytes int)
	DecisionSkippedFn func()
	ResourceFailedFn  func()
}

func (m *HarvestMetrics) DecisionsFound(layout ratedoc.Layout, n int) {
	m.DecisionsFoundFn(layout, n)
}

func (m *HarvestMetrics) ArtifactSaved(bytes int) {
	m.ArtifactSavedFn(bytes)
}

func (m *HarvestMetrics) DecisionSkipped() {
	m.DecisionSkippedFn()
}

func (m *HarvestMetrics) ResourceFailed() {
	m.ResourceFailedFn()
}
