package service

import (
	"fmt"
	"strings"

	"github.com/blaisecz/sleep-records/internal/domain"
)

const (
	// RecentWindowRecords is how many of the latest records form the "recent" window.
	RecentWindowRecords = 7
	// MaxRecentNotes caps the notes embedded in the prompt.
	MaxRecentNotes = 5
)

// DefaultAdviceSystemPrompt is used when no prompt is loaded from Langfuse.
const DefaultAdviceSystemPrompt = `당신은 수면 전문가입니다. 사용자의 수면 기록 요약을 분석하여 개인 맞춤형 조언을 제공합니다.

규칙:
- 의료적 진단이 아닌 일반적인 건강 조언임을 명시하세요.
- 제공된 데이터만 근거로 판단하세요.
- 한국어로 따뜻하고 친근하게 작성하세요.

반드시 아래 형태의 JSON 객체 하나로만 응답하세요. 백틱이나 추가 설명은 넣지 마세요.

{
  "advice": "전반적인 수면 상태에 대한 조언 2-3문장",
  "sleepQuality": "excellent | good | fair | poor 중 하나",
  "recommendations": ["구체적인 개선 방안 3-4개"],
  "insights": ["수면 패턴에서 발견한 인사이트 2-3개"]
}`

// summarizeRecords derives the advisor inputs from the full history. The
// returned slice holds the recent window, oldest first.
func summarizeRecords(records []domain.SleepRecord) (domain.AdviceContext, []domain.SleepRecord) {
	sorted := sortedByDateAsc(records)

	recent := sorted
	if len(recent) > RecentWindowRecords {
		recent = recent[len(recent)-RecentWindowRecords:]
	}

	var notes []string
	for _, r := range recent {
		if r.Note != nil && strings.TrimSpace(*r.Note) != "" {
			notes = append(notes, strings.TrimSpace(*r.Note))
		}
	}
	if len(notes) > MaxRecentNotes {
		notes = notes[len(notes)-MaxRecentNotes:]
	}

	var sums [7]float64
	var counts [7]int
	for i := range sorted {
		if day, ok := sorted[i].Weekday(); ok {
			sums[day] += sorted[i].Hours
			counts[day]++
		}
	}
	weekdays := make(map[string]float64)
	for day, label := range domain.WeekdayLabels {
		if counts[day] > 0 {
			weekdays[label] = round1(sums[day] / float64(counts[day]))
		}
	}

	return domain.AdviceContext{
		TotalRecords:   len(sorted),
		AverageHours:   meanHours(sorted),
		RecentAverage:  meanHours(recent),
		WeekdayAverage: weekdays,
		RecentNotes:    notes,
	}, recent
}

// buildAdvicePrompt renders the user prompt sent to the model.
func buildAdvicePrompt(summary domain.AdviceContext, recent []domain.SleepRecord) string {
	var b strings.Builder

	b.WriteString("다음 수면 데이터를 분석하여 개인 맞춤형 조언을 제공해주세요.\n\n")

	b.WriteString("## 수면 데이터 요약:\n")
	fmt.Fprintf(&b, "- 총 기록 일수: %d일\n", summary.TotalRecords)
	fmt.Fprintf(&b, "- 전체 평균 수면시간: %.1f시간\n", summary.AverageHours)
	fmt.Fprintf(&b, "- 최근 %d일 평균: %.1f시간\n", len(recent), summary.RecentAverage)
	if len(summary.RecentNotes) > 0 {
		fmt.Fprintf(&b, "- 최근 메모: %s\n", strings.Join(summary.RecentNotes, ", "))
	} else {
		b.WriteString("- 최근 메모: 없음\n")
	}

	b.WriteString("\n## 요일별 평균 수면시간:\n")
	for _, label := range domain.WeekdayLabels {
		if avg, ok := summary.WeekdayAverage[label]; ok {
			fmt.Fprintf(&b, "%s요일: %.1f시간\n", label, avg)
		}
	}

	b.WriteString("\n## 최근 수면 기록:\n")
	for _, r := range recent {
		fmt.Fprintf(&b, "- %s (%s): %g시간", r.Date, weekdayName(r), r.Hours)
		if r.Note != nil && strings.TrimSpace(*r.Note) != "" {
			fmt.Fprintf(&b, " (%s)", strings.TrimSpace(*r.Note))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func weekdayName(r domain.SleepRecord) string {
	day, ok := r.Weekday()
	if !ok {
		return "?"
	}
	return domain.WeekdayLabel(day) + "요일"
}

// EmptyAdvice is returned when there are no records to analyze.
func EmptyAdvice() *domain.SleepAdvice {
	return &domain.SleepAdvice{
		Advice:          "수면 기록이 부족하여 분석할 수 없습니다. 더 많은 데이터를 수집해보세요.",
		SleepQuality:    domain.QualityFair,
		Recommendations: []string{"매일 수면 기록을 작성해주세요", "규칙적인 수면 스케줄을 유지하세요"},
		Insights:        []string{"충분한 데이터가 수집되면 더 정확한 분석이 가능합니다"},
	}
}

// FallbackAdvice is computed locally when the model cannot be used.
func FallbackAdvice(summary domain.AdviceContext) *domain.SleepAdvice {
	avg := summary.AverageHours
	ideal := avg >= 7 && avg <= 9

	var comment string
	switch {
	case ideal:
		comment = "적정 수면시간을 잘 유지하고 계십니다!"
	case avg < 7:
		comment = "조금 더 충분한 수면을 취해보세요."
	default:
		comment = "수면시간을 조금 줄여보는 것도 좋겠습니다."
	}

	quality := domain.QualityFair
	if ideal {
		quality = domain.QualityGood
	}

	return &domain.SleepAdvice{
		Advice:       fmt.Sprintf("평균 %.1f시간의 수면을 취하고 계시네요. %s", avg, comment),
		SleepQuality: quality,
		Recommendations: []string{
			"규칙적인 수면 시간 유지하기",
			"잠들기 전 스마트폰 사용 줄이기",
			"침실 온도를 18-22도로 유지하기",
			"카페인 섭취 시간 조절하기",
		},
		Insights: []string{
			fmt.Sprintf("총 %d일간의 수면 데이터가 수집되었습니다", summary.TotalRecords),
			fmt.Sprintf("최근 일주일 평균은 %.1f시간입니다", summary.RecentAverage),
		},
	}
}
