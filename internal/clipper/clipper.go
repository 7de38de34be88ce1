// Package clipper turns a shared web page (an event notice, a booking
// confirmation) into an appointment by stripping the page down to text and
// letting the LLM pull out the event details.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shedai/internal/llm"
	"shedai/internal/parse"

	"github.com/PuerkitoBio/goquery"
)

const maxPageTextLen = 8000

// ClippedAppointment is the event extracted from a page.
type ClippedAppointment struct {
	Title    string
	StartsAt time.Time
}

// Clipper fetches URLs and extracts appointments from them.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen: textGen,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ClipURL fetches the URL and extracts an appointment using the LLM. now is
// the base date for resolving relative or partial dates in the page.
func (c *Clipper) ClipURL(ctx context.Context, url string, now time.Time) (*ClippedAppointment, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are an event extraction expert. The following text comes from a web page a
user shared because it describes an event they want on their calendar.
Extract the event and return the result strictly as a JSON object:
{
  "title": "short event title",
  "date": "YYYY-MM-DD",
  "time": "HH:MM"
}
Use 24-hour time. Today is %s; resolve relative dates against it. Use an empty
string for anything the page does not say. Do not include any other text.

Page text:
%s
`, now.Format("2006-01-02"), content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted struct {
		Title string `json:"title"`
		Date  string `json:"date"`
		Time  string `json:"time"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}

	title := strings.TrimSpace(extracted.Title)
	if title == "" {
		title = parse.DefaultAppointmentTitle
	}

	startsAt, err := resolveStart(extracted.Date, extracted.Time, now)
	if err != nil {
		return nil, err
	}

	return &ClippedAppointment{Title: title, StartsAt: startsAt}, nil
}

func resolveStart(date, clock string, now time.Time) (time.Time, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("unusable event date %q: %w", date, err)
		}
		day = parsed
	}

	c := parse.Clock{Hour: 9}
	if clock != "" {
		parsed, ok := parse.ParseClock(clock)
		if !ok {
			return time.Time{}, fmt.Errorf("unusable event time %q", clock)
		}
		c = parsed
	}
	return day.Add(time.Duration(c.Minutes()) * time.Minute), nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := strings.TrimSpace(doc.Find("body").Text())
	if len(text) > maxPageTextLen {
		text = text[:maxPageTextLen]
	}
	return text, nil
}
