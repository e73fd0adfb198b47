package quote

const (
	StatusPending  = "Pending"
	StatusQuoted   = "Quoted"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusExpired  = "Expired"
)

type Quote struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	Service       string `json:"service,omitempty"`
	Description   string `json:"description,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	Status        string `json:"status"`
	DaysLeft      int    `json:"daysLeft"`
	RequestDate   string `json:"requestDate"`
}
