package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "runroom_http_requests_total"
	MetricNameHTTPRequestDuration  = "runroom_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "runroom_http_requests_in_flight"

	MetricNameItemsBought      = "runroom_items_bought_total"
	MetricNamePointsSpent      = "runroom_points_spent_total"
	MetricNameStarterKits      = "runroom_starter_kits_granted_total"
	MetricNameStravaSyncs      = "runroom_strava_syncs_total"
	MetricNameKmSynced         = "runroom_km_synced_total"
	MetricNameRoomLayoutsSaved = "runroom_room_layouts_saved_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextItemsBought      = "Total number of shop items purchased"
	HelpTextPointsSpent      = "Total points spent on purchases"
	HelpTextStarterKits      = "Total starter kits granted"
	HelpTextStravaSyncs      = "Total Strava sync runs by outcome"
	HelpTextKmSynced         = "Total kilometers aggregated from Strava syncs"
	HelpTextRoomLayoutsSaved = "Total room layout saves"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelItem   = "item"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// HTTPLatencyBuckets covers fast local handlers through slow provider-bound syncs
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
