package assist

import "math"

// Label classifies a sentiment score.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Band is the colour shown next to a confidence value.
type Band string

const (
	BandGreen Band = "green"
	BandAmber Band = "amber"
	BandRed   Band = "red"
)

// BandFor maps a confidence in [0,1] to its colour band.
func BandFor(confidence float64) Band {
	switch {
	case confidence >= 0.75:
		return BandGreen
	case confidence >= 0.5:
		return BandAmber
	default:
		return BandRed
	}
}

// Sentiment is the result of scoring a text.
type Sentiment struct {
	Score      float64 `json:"score"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Band       Band    `json:"band"`
}

// neutralBand is the half-width around zero treated as neutral.
const neutralBand = 0.1

// Analyze scores text against a small polarity lexicon. A negator ("not",
// "never", ...) flips the next opinion word. Score is the normalized net
// polarity in [-1,1]; confidence grows with the share of opinion words in the
// text and with how one-sided they are.
func Analyze(text string) Sentiment {
	words := terms(text)
	raw := opinionWords(text)

	var pos, neg float64
	negate := false
	for _, w := range raw {
		if _, ok := negators[w]; ok {
			negate = true
			continue
		}
		v, ok := lexicon[w]
		if !ok {
			continue
		}
		if negate {
			v = -v
			negate = false
		}
		if v > 0 {
			pos += v
		} else {
			neg -= v
		}
	}

	total := pos + neg
	if total == 0 {
		return Sentiment{Label: Neutral, Band: BandFor(0)}
	}

	score := (pos - neg) / total
	coverage := math.Min(1, total/math.Max(1, float64(len(words)))*2)
	confidence := round2(math.Abs(score)*0.6 + coverage*0.4)

	label := Neutral
	switch {
	case score > neutralBand:
		label = Positive
	case score < -neutralBand:
		label = Negative
	}

	return Sentiment{
		Score:      round2(score),
		Label:      label,
		Confidence: confidence,
		Band:       BandFor(confidence),
	}
}

// opinionWords returns the negators and lexicon words of text in order.
func opinionWords(text string) []string {
	all := tokenize(text)
	out := all[:0]
	for _, w := range all {
		if _, ok := negators[w]; ok {
			out = append(out, w)
			continue
		}
		if _, ok := lexicon[w]; ok {
			out = append(out, w)
		}
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

var negators = toSet("not", "no", "never", "isn't", "wasn't", "don't", "doesn't", "didn't", "can't", "won't", "hardly")

var lexicon = map[string]float64{
	"good": 1, "great": 2, "excellent": 2, "helpful": 1, "clear": 1, "useful": 1,
	"love": 2, "like": 1, "thanks": 1, "amazing": 2, "easy": 1, "fast": 1,
	"happy": 1, "perfect": 2, "nice": 1, "improved": 1, "well": 1, "best": 2,
	"bad": -1, "poor": -1, "terrible": -2, "awful": -2, "confusing": -1,
	"wrong": -1, "broken": -2, "slow": -1, "hate": -2, "useless": -2,
	"outdated": -1, "hard": -1, "difficult": -1, "worse": -1, "worst": -2,
	"error": -1, "fails": -1, "missing": -1, "unclear": -1,
}
