package bookmark

import "time"

// ToggleResponse reports the bookmark state after a toggle.
type ToggleResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

// BookmarkResponse is a saved content as shown in the bookmark list.
type BookmarkResponse struct {
	ContentID  uint      `json:"content_id"`
	Title      string    `json:"title"`
	Kind       string    `json:"kind"`
	URL        string    `json:"url,omitempty"`
	Bookmarked time.Time `json:"bookmarked_at"`
}
