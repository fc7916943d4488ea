package ratedoc

// HarvestMetrics records harvest outcomes.
type HarvestMetrics interface {
	// DecisionsFound records n decisions parsed from a year page of layout.
	DecisionsFound(layout Layout, n int)
	// ArtifactSaved records a written report of size bytes.
	ArtifactSaved(bytes int)
	// DecisionSkipped records a decision skipped because it was already recorded.
	DecisionSkipped()
	// ResourceFailed records a resource whose content could not be fetched or extracted.
	ResourceFailed()
}
