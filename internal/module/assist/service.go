package assist

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	textassist "github.com/simp-lee/portal/internal/assist"
	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/sanitize"
)

const (
	maxTextLength = 100_000
	maxSentences  = 20
)

// Service runs the local text tools on request text and stored content.
type Service struct {
	contents         domain.ContentRepository
	plain            sanitize.Sanitizer
	defaultSentences int
}

// NewService creates a Service. plain must strip all markup; it turns stored
// content bodies into text before summarizing.
func NewService(contents domain.ContentRepository, plain sanitize.Sanitizer, defaultSentences int) *Service {
	if defaultSentences < 1 {
		defaultSentences = 3
	}
	return &Service{contents: contents, plain: plain, defaultSentences: defaultSentences}
}

// Summarize returns an extractive summary of text. sentences 0 means the
// configured default.
func (s *Service) Summarize(text string, sentences int) (string, error) {
	if err := checkText(text); err != nil {
		return "", err
	}
	n, err := s.sentenceCount(sentences)
	if err != nil {
		return "", err
	}
	return textassist.Summarize(text, n), nil
}

// Sentiment scores the tone of text.
func (s *Service) Sentiment(text string) (textassist.Sentiment, error) {
	if err := checkText(text); err != nil {
		return textassist.Sentiment{}, err
	}
	return textassist.Analyze(text), nil
}

// ContentSummary summarizes the body of a stored content.
func (s *Service) ContentSummary(ctx context.Context, contentID uint, sentences int) (*domain.Content, string, error) {
	n, err := s.sentenceCount(sentences)
	if err != nil {
		return nil, "", err
	}
	c, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return nil, "", err
	}
	return c, textassist.Summarize(s.plainText(c.Body), n), nil
}

// blockBreaks keeps block boundaries apart once the markup is stripped.
var blockBreaks = strings.NewReplacer(
	"</p>", "</p>\n\n",
	"</li>", "</li>\n\n",
	"</h1>", "</h1>\n\n", "</h2>", "</h2>\n\n", "</h3>", "</h3>\n\n",
	"</h4>", "</h4>\n\n", "</h5>", "</h5>\n\n", "</h6>", "</h6>\n\n",
	"</blockquote>", "</blockquote>\n\n",
	"</div>", "</div>\n\n",
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
)

func (s *Service) plainText(body string) string {
	return html.UnescapeString(s.plain.Sanitize(blockBreaks.Replace(body)))
}

func (s *Service) sentenceCount(n int) (int, error) {
	switch {
	case n == 0:
		return s.defaultSentences, nil
	case n < 0 || n > maxSentences:
		return 0, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("sentences must be between 1 and %d", maxSentences), nil)
	}
	return n, nil
}

func checkText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.NewAppError(domain.CodeValidation, "text must not be empty", nil)
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("text must be at most %d characters", maxTextLength), nil)
	}
	return nil
}
