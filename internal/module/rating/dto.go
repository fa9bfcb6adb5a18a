package rating

// SubmitRequest carries a star vote.
type SubmitRequest struct {
	Stars int `json:"stars" binding:"required,min=1,max=5"`
}

// AggregateResponse is the rating summary shown next to a content.
// Mean is rounded to two decimals for display.
type AggregateResponse struct {
	ContentID uint     `json:"content_id"`
	Histogram [5]int64 `json:"histogram"`
	Total     int64    `json:"total"`
	Mean      float64  `json:"mean"`
	UserVote  int      `json:"user_vote"`
}
