package blog

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Post struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content,omitempty"`
	Author      string   `json:"author,omitempty"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags,omitempty"`
	PublishedAt string   `json:"publishedAt,omitempty"`
}
