package entities

// Ligação direcionada e não-hierárquica entre duas Entities,
// possivelmente de collections diferentes.
type Reference struct {
	SourceID     string `json:"source_id"`
	TargetID     string `json:"target_id"`
	Relationship string `json:"relationship"`
}
