package events

const (
	StreamName   = "HAVEN_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectPropertyAdded(propertyID string) string {
	return "haven.session.property." + propertyID + ".added"
}
func SubjectPropertyDeleted(propertyID string) string {
	return "haven.session.property." + propertyID + ".deleted"
}

const (
	SubjectWeightsUpdated = "haven.session.weights.updated"
	SubjectSignedIn       = "haven.session.signedin"
	SubjectSyncCompleted  = "haven.sync.completed"
	SubjectSyncFailed     = "haven.sync.failed"
)

// PropertyEvent accompanies property lifecycle subjects.
type PropertyEvent struct {
	PropertyID string `json:"property_id"`
	Address    string `json:"address"`
}

// WeightsEvent accompanies weight updates.
type WeightsEvent struct {
	RawWeights map[string]float64 `json:"raw_weights"`
	Preset     string             `json:"preset,omitempty"`
}

// SyncEvent accompanies sync outcomes.
type SyncEvent struct {
	UserID string `json:"user_id"`
	Error  string `json:"error,omitempty"`
}
