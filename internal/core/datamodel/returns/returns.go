package returns

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusRefunded = "Refunded"
)

type Item struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition,omitempty"`
}

// AdminResponse is written exactly once, when the request is responded to.
type AdminResponse struct {
	Approved    bool   `json:"approved"`
	Reason      string `json:"reason"`
	Message     string `json:"message,omitempty"`
	Alternative string `json:"alternative,omitempty"`
}

type Return struct {
	ID            int64          `json:"id"`
	OrderNumber   string         `json:"orderNumber"`
	UserID        int64          `json:"userId"`
	CustomerName  string         `json:"customerName"`
	Reason        string         `json:"reason,omitempty"`
	Products      []Item         `json:"products"`
	Status        string         `json:"status"`
	RequestDate   string         `json:"requestDate"`
	ProcessedDate string         `json:"processedDate,omitempty"`
	DaysLeft      int            `json:"daysLeft"`
	AdminResponse *AdminResponse `json:"adminResponse,omitempty"`
}

func (r *Return) CanBeResponded() bool {
	return r.Status == StatusPending
}

func (r *Return) CanBeRefunded() bool {
	return r.Status == StatusApproved
}
