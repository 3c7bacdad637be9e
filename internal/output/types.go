package output

import "time"

// PageView is a resolved Notion page as shown by `page view`.
type PageView struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Icon           string    `json:"icon,omitempty"`
	Parent         string    `json:"parent"`
	CreatedTime    time.Time `json:"created_time"`
	CreatedBy      string    `json:"created_by"`
	LastEditedTime time.Time `json:"last_edited_time"`
	LastEditedBy   string    `json:"last_edited_by"`
	Archived       bool      `json:"archived"`
	Content        string    `json:"content"`
}
