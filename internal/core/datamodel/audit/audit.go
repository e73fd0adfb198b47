package audit

// ActivityLogLimit bounds the activity log to the most recent entries;
// older ones are evicted on insert.
const ActivityLogLimit = 50

const (
	ActivityCreate = "create"
	ActivityUpdate = "update"
	ActivityDelete = "delete"
)

type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Date    string `json:"date"`
	Read    bool   `json:"read"`
	Link    string `json:"link,omitempty"`
}

type Entry struct {
	ID      string `json:"id"`
	Action  string `json:"action"`
	User    string `json:"user"`
	Details string `json:"details"`
	Date    string `json:"date"`
	Type    string `json:"type"`
}
