package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/blaisecz/sleep-records/internal/domain"
)

var (
	// sectionHeader matches the start of the next labelled section, e.g. "\nQUALITY:".
	sectionHeader = regexp.MustCompile(`\n[A-Z]+:`)
	listBullet    = regexp.MustCompile(`^[-*•]\s*`)
	codeFence     = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

func defaultAdvice() *domain.SleepAdvice {
	return &domain.SleepAdvice{
		Advice:          "건강한 수면 습관을 유지하시고 있습니다. 지속적인 관리가 중요합니다.",
		SleepQuality:    domain.QualityFair,
		Recommendations: []string{"규칙적인 수면 시간 유지", "침실 환경 개선"},
		Insights:        []string{"수면 패턴이 안정적입니다"},
	}
}

// ParseAdviceReply turns a model reply into advice. JSON replies are preferred;
// otherwise the labelled ADVICE/QUALITY/RECOMMENDATIONS/INSIGHTS text format is
// read. Missing or invalid parts take default values, so parsing never fails.
func ParseAdviceReply(reply string) *domain.SleepAdvice {
	reply = strings.TrimSpace(reply)
	if m := codeFence.FindStringSubmatch(reply); m != nil {
		reply = m[1]
	}

	if advice, ok := parseJSONAdvice(reply); ok {
		return advice
	}
	return parseSectionAdvice(reply)
}

type adviceReply struct {
	Advice          string   `json:"advice"`
	SleepQuality    string   `json:"sleepQuality"`
	Quality         string   `json:"quality"`
	Recommendations []string `json:"recommendations"`
	Insights        []string `json:"insights"`
}

func parseJSONAdvice(reply string) (*domain.SleepAdvice, bool) {
	if !strings.HasPrefix(reply, "{") {
		return nil, false
	}

	var parsed adviceReply
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return nil, false
	}

	quality := parsed.SleepQuality
	if quality == "" {
		quality = parsed.Quality
	}
	return mergeDefaults(parsed.Advice, quality, cleanItems(parsed.Recommendations), cleanItems(parsed.Insights)), true
}

func parseSectionAdvice(reply string) *domain.SleepAdvice {
	return mergeDefaults(
		section(reply, "ADVICE"),
		section(reply, "QUALITY"),
		listItems(section(reply, "RECOMMENDATIONS")),
		listItems(section(reply, "INSIGHTS")),
	)
}

func mergeDefaults(text, quality string, recommendations, insights []string) *domain.SleepAdvice {
	advice := defaultAdvice()

	if text = strings.TrimSpace(text); text != "" {
		advice.Advice = text
	}
	if q, ok := domain.ParseSleepQuality(strings.ToLower(strings.TrimSpace(quality))); ok {
		advice.SleepQuality = q
	}
	if len(recommendations) > 0 {
		advice.Recommendations = recommendations
	}
	if len(insights) > 0 {
		advice.Insights = insights
	}
	return advice
}

// section returns the body of "NAME:" up to the next uppercase label line or the end of the text.
func section(text, name string) string {
	start := strings.Index(text, name+":")
	if start < 0 {
		return ""
	}
	body := strings.TrimLeft(text[start+len(name)+1:], " \t\r\n")
	if body == "" {
		return ""
	}

	// The body holds at least one character before the next label can end it.
	if loc := sectionHeader.FindStringIndex(body[1:]); loc != nil {
		body = body[:loc[0]+1]
	}
	return strings.TrimSpace(body)
}

func listItems(body string) []string {
	if body == "" {
		return nil
	}
	return cleanItems(strings.Split(body, "\n"))
}

func cleanItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		item := strings.TrimSpace(listBullet.ReplaceAllString(strings.TrimSpace(line), ""))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
