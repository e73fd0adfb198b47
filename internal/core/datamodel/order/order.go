package order

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusRejected  = "Rejected"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

type Item struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

type Order struct {
	ID            int64  `json:"id"`
	OrderNumber   string `json:"orderNumber"`
	UserID        *int64 `json:"userId,omitempty"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	Products      []Item `json:"products"`
	Total         int64  `json:"total"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	Notes         string `json:"notes,omitempty"`
}

// ComputeTotal sums quantity times price over the line items.
func (o *Order) ComputeTotal() int64 {
	var total int64
	for _, item := range o.Products {
		total += int64(item.Quantity) * item.Price
	}
	return total
}
