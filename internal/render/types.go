package render

// Service is a Render service as returned by the /services endpoints.
type Service struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          string        `json:"type"`
	Region        string        `json:"region"`
	Suspended     string        `json:"suspended,omitempty"`
	CreatedAt     string        `json:"createdAt,omitempty"`
	UpdatedAt     string        `json:"updatedAt,omitempty"`
	ServiceDetail ServiceDetail `json:"serviceDetail"`
}

// ServiceDetail carries the type-specific detail block nested in a service.
type ServiceDetail struct {
	Status string `json:"status,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Deploy is one deployment of a service.
type Deploy struct {
	ID         string `json:"id"`
	CommitID   string `json:"commitId,omitempty"`
	Status     string `json:"status"`
	Trigger    string `json:"trigger,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// LogEntry is a single service log line. Upstream ordering is opaque and
// must be preserved as received.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message"`
}

// Owner is the account (user or team) that owns the API key.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type,omitempty"`
}

// EnvGroup is an environment group attached to one or more services.
type EnvGroup struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ServiceIDs []string `json:"serviceIds,omitempty"`
}

// List endpoints wrap each item in a cursor envelope for pagination.
type serviceEnvelope struct {
	Cursor  string  `json:"cursor"`
	Service Service `json:"service"`
}

type deployEnvelope struct {
	Cursor string `json:"cursor"`
	Deploy Deploy `json:"deploy"`
}

// apiErrorBody is the shape of Render error responses.
type apiErrorBody struct {
	Message string `json:"message"`
}
