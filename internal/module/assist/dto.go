package assist

// SummarizeRequest is the body of POST /assist/summarize.
type SummarizeRequest struct {
	Text      string `json:"text" binding:"required"`
	Sentences int    `json:"sentences" binding:"omitempty,min=1,max=20"`
}

// SentimentRequest is the body of POST /assist/sentiment.
type SentimentRequest struct {
	Text string `json:"text" binding:"required"`
}

// SummaryResponse carries a generated summary.
type SummaryResponse struct {
	ContentID uint   `json:"content_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Summary   string `json:"summary"`
}
