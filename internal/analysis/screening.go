// Package analysis provides automated content screening for outbound
// messages. Screening never blocks a send; it flags the message so the
// moderation queue sees it with the categories that tripped.
package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// Screening categories.
const (
	CategoryProfanity    = "profanity"
	CategoryPersonalInfo = "personal_info"
	CategorySpam         = "spam"
	CategoryScam         = "potential_scam"
)

// Suggested actions, by rising severity.
const (
	ActionAllow  = "allow"
	ActionReview = "review"
	ActionBlock  = "block"
)

var profanityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(fuck|shit|bitch|bastard)\b`),
	regexp.MustCompile(`(?i)\b(kill\s+yourself|kys)\b`),
	regexp.MustCompile(`(?i)\b(stalker?|creep|pervert)\b`),
}

var personalInfoPatterns = []*regexp.Regexp{
	// Phone numbers
	regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
	regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.]?\d{4}`),
	// Email addresses
	regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`),
	// Social security numbers
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	// Card numbers
	regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
}

var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(buy now|click here|act fast|limited time|free money|guaranteed)\b`),
	regexp.MustCompile(`(.)\1{10,}`),
}

var scamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(send\s+money|wire\s+transfer|western\s+union|cash\s+app|venmo)\b`),
	regexp.MustCompile(`(?i)\b(easy\s+money|quick\s+cash|work\s+from\s+home)\b`),
}

// Screening is the outcome of running all checks over one message body.
type Screening struct {
	Flagged         bool
	Confidence      float64
	Categories      []string
	SuggestedAction string
	Explanation     string
}

type check struct {
	category   string
	patterns   []*regexp.Regexp
	confidence func(hits int) float64
}

var checks = []check{
	{CategoryProfanity, profanityPatterns, func(hits int) float64 {
		c := float64(hits) * 0.3
		if c > 0.9 {
			c = 0.9
		}
		return c
	}},
	{CategoryPersonalInfo, personalInfoPatterns, func(hits int) float64 { return 0.7 }},
	{CategorySpam, spamPatterns, func(hits int) float64 {
		c := float64(hits) * 0.2
		if c > 0.6 {
			c = 0.6
		}
		return c
	}},
	{CategoryScam, scamPatterns, func(hits int) float64 { return 0.8 }},
}

// ScreenContent runs every pattern check over the content and aggregates the
// result. Confidence is the max over tripped checks.
func ScreenContent(content string) Screening {
	var out Screening

	for _, c := range checks {
		hits := 0
		for _, p := range c.patterns {
			hits += len(p.FindAllString(content, -1))
		}
		if hits == 0 {
			continue
		}
		out.Flagged = true
		out.Categories = append(out.Categories, c.category)
		if conf := c.confidence(hits); conf > out.Confidence {
			out.Confidence = conf
		}
	}

	switch {
	case out.Confidence > 0.8:
		out.SuggestedAction = ActionBlock
	case out.Confidence > 0.4 || contains(out.Categories, CategoryPersonalInfo):
		out.SuggestedAction = ActionReview
	default:
		out.SuggestedAction = ActionAllow
	}

	if out.Flagged {
		out.Explanation = fmt.Sprintf("Content flagged for: %s", strings.Join(out.Categories, ", "))
	} else {
		out.Explanation = "Content appears safe"
	}

	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
