package workshop

const (
	StatusScheduled = "Scheduled"
	StatusFull      = "Full"
	StatusCompleted = "Completed"
)

// Enrollment is a snapshot of the user's contact info captured at sign-up
// time; it does not track later edits to the user record.
type Enrollment struct {
	UserID     int64  `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Experience string `json:"experience,omitempty"`
	EnrolledAt string `json:"enrolledAt"`
}

type Workshop struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Instructor    string       `json:"instructor,omitempty"`
	Date          string       `json:"date"`
	Duration      string       `json:"duration,omitempty"`
	MaxCapacity   int          `json:"maxCapacity"`
	Students      int          `json:"students"`
	Price         int64        `json:"price"`
	Revenue       int64        `json:"revenue"`
	Status        string       `json:"status"`
	EnrolledUsers []Enrollment `json:"enrolledUsers"`
}

func (w *Workshop) IsFull() bool {
	return w.Students >= w.MaxCapacity
}

func (w *Workshop) IsCompleted() bool {
	return w.Status == StatusCompleted
}
