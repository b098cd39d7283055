package fulfillment

// Track selects which of the two parallel status vocabularies an order line
// follows: the pre-production fit sample or the production garment itself.
type Track string

const (
	TrackFitSample     Track = "FIT_SAMPLE"
	TrackOriginalOrder Track = "ORIGINAL_ORDER"
)

// TrackFor maps the line-level fit-sample selector to a track
func TrackFor(fitSample bool) Track {
	if fitSample {
		return TrackFitSample
	}
	return TrackOriginalOrder
}

// String returns the string representation of Track
func (t Track) String() string {
	return string(t)
}

// UpstreamTag is the upstream platform's own status tag for an order, as
// carried in the orderStatus field of the order context snapshot.
type UpstreamTag string

const (
	TagOrderPlaced      UpstreamTag = "Order Placed"
	TagStartProduction  UpstreamTag = "Start Production"
	TagFinishProduction UpstreamTag = "Finish Production"
	TagMarkAsPacked     UpstreamTag = "Mark As Packed"
	TagDispatched       UpstreamTag = "Dispatched"
	TagDelivered        UpstreamTag = "Delivered"
	TagEditMeasurements UpstreamTag = "Edit Measurements"
	TagFeedbackReceived UpstreamTag = "Feedback Received"
)

// String returns the string representation of UpstreamTag
func (t UpstreamTag) String() string {
	return string(t)
}

// PhaseLabel is the per-line status label from the controlled production
// vocabulary. It travels as a free-form string on the wire.
type PhaseLabel string

const (
	PhaseStartProduction    PhaseLabel = "Start Production"
	PhaseFinishProduction   PhaseLabel = "Finish Production"
	PhaseMarkAsPacked       PhaseLabel = "Mark As Packed"
	PhaseDispatched         PhaseLabel = "Dispatched"
	PhaseDelivered          PhaseLabel = "Delivered"
	PhaseMeasurementUpdated PhaseLabel = "Measurement Updated"
	PhaseFeedbackReceived   PhaseLabel = "Feedback Received"
)

// String returns the string representation of PhaseLabel
func (p PhaseLabel) String() string {
	return string(p)
}

type rollupKey struct {
	fitSample bool
	tag       UpstreamTag
}

// rollupPhrases is the single source of truth for composed rollup phrases.
// A combination absent from this table produces no rollup write at all.
var rollupPhrases = map[rollupKey]string{
	{true, TagFinishProduction}:  "Fit Sample - Finish Production",
	{true, TagMarkAsPacked}:      "Fit Sample - Mark As Packed",
	{true, TagDispatched}:        "Fit Sample - Dispatched",
	{true, TagDelivered}:         "Fit Sample - Delivered",
	{true, TagEditMeasurements}:  "Fit Sample - Measurement Updated",
	{true, TagFeedbackReceived}:  "Fit Sample - Feedback Received",
	{false, TagFinishProduction}: "Original Order - Finish Production",
	{false, TagMarkAsPacked}:     "Original Order - Mark As Packed",
	{false, TagDispatched}:       "Original Order - Dispatched",
	{false, TagDelivered}:        "Original Order - Order Completed",
}

// RollupPhrase returns the composed rollup phrase for a (track, tag)
// combination. The second return value is false for unmapped combinations,
// which callers must treat as an explicit no-op, not an error.
func RollupPhrase(fitSample bool, tag UpstreamTag) (string, bool) {
	phrase, ok := rollupPhrases[rollupKey{fitSample: fitSample, tag: tag}]
	return phrase, ok
}

// StartPhrase returns the creation-time rollup phrase for a brand-new batch
// of order lines, which is distinct from the transition table above.
func StartPhrase(fitSample bool) string {
	if fitSample {
		return "Fit Sample - Start Production"
	}
	return "Original Order - Start Production"
}
