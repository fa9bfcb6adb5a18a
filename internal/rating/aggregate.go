// Package rating maintains a five-bucket star histogram and one viewing user's
// vote on it.
package rating

import "math"

// Star bounds.
const (
	MinStars = 1
	MaxStars = 5
)

// Histogram holds vote counts indexed by star-1.
type Histogram [MaxStars]int64

// Total returns the sum of all buckets.
func (h Histogram) Total() int64 {
	var n int64
	for _, c := range h {
		n += c
	}
	return n
}

// Mean returns the weighted average star value, or 0 when there are no votes.
func (h Histogram) Mean() float64 {
	var n, sum int64
	for i, c := range h {
		n += c
		sum += c * int64(i+1)
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Valid reports whether stars is a votable value.
func Valid(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}

// Aggregate is the rating state of one piece of content as seen by one user.
// Total and Mean are always derived from Histogram.
type Aggregate struct {
	Histogram Histogram `json:"histogram"`
	Total     int64     `json:"total"`
	Mean      float64   `json:"mean"`
	// UserVote is the viewing user's vote, 0 when the user has not voted.
	UserVote int `json:"user_vote"`
}

// FromSnapshot builds an Aggregate from server-side counts. Negative buckets are
// treated as zero and an out-of-range userVote as no vote.
func FromSnapshot(hist Histogram, userVote int) Aggregate {
	for i, c := range hist {
		if c < 0 {
			hist[i] = 0
		}
	}
	if !Valid(userVote) || hist[userVote-1] == 0 {
		userVote = 0
	}
	return derive(hist, userVote)
}

func derive(hist Histogram, userVote int) Aggregate {
	return Aggregate{
		Histogram: hist,
		Total:     hist.Total(),
		Mean:      hist.Mean(),
		UserVote:  userVote,
	}
}

// HasVote reports whether the viewing user currently has a vote.
func (a Aggregate) HasVote() bool {
	return a.UserVote != 0
}

// RoundedMean returns Mean rounded to the given number of decimals.
func (a Aggregate) RoundedMean(decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(a.Mean*p) / p
}

// Submit returns the aggregate after the viewing user votes stars. A repeat
// voter moves one unit between buckets; a first vote adds one. ok is false, and
// the aggregate is returned unchanged, when stars is out of range.
func (a Aggregate) Submit(stars int) (next Aggregate, ok bool) {
	if !Valid(stars) {
		return a, false
	}
	hist := a.Histogram
	if a.HasVote() && hist[a.UserVote-1] > 0 {
		hist[a.UserVote-1]--
	}
	hist[stars-1]++
	return derive(hist, stars), true
}

// Retract returns the aggregate after the viewing user withdraws their vote.
// ok is false when there is no vote to withdraw.
func (a Aggregate) Retract() (next Aggregate, ok bool) {
	if !a.HasVote() {
		return a, false
	}
	hist := a.Histogram
	if hist[a.UserVote-1] > 0 {
		hist[a.UserVote-1]--
	}
	return derive(hist, 0), true
}
