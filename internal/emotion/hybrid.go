package emotion

import (
	"strings"

	"moodtown/internal/domain"
)

// Léxicos de contexto para las dos emociones ambiguas. Una coincidencia de
// regla tiene prioridad sobre la polaridad que sugiera el LLM.
var (
	positiveSurprise = []string{
		"기쁘", "좋은 소식", "반가운", "감동", "선물", "축하",
		"합격", "성공", "칭찬", "대박", "행복한", "잘됐다",
	}
	negativeSurprise = []string{
		"충격", "실망", "황당", "어이없", "문제 생겼",
		"사고", "망했다", "나쁜 소식", "당황", "멘붕", "큰일", "무서웠",
	}
	positiveShame = []string{
		"설레", "좋아하는 사람", "썸", "두근", "얼굴 빨개졌",
		"부끄러웠지만 좋았", "칭찬받아", "기분 좋게",
	}
	negativeShame = []string{
		"창피", "민망", "수치심", "망신", "무안",
		"머쓱", "욕먹었", "오해받", "실수해서", "잘못해서",
	}
)

func countHits(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func ruleBasedPolarity(text string, positive, negative []string) (domain.Polarity, bool) {
	pos := countHits(text, positive)
	neg := countHits(text, negative)
	switch {
	case pos > neg && pos > 0:
		return domain.PolarityPositive, true
	case neg > pos && neg > 0:
		return domain.PolarityNegative, true
	}
	return "", false
}

// HybridPolarity combina reglas de léxico con la polaridad sugerida por el
// LLM para 놀람 y 부끄러움. La regla gana si decide; si no, se usa el valor
// del LLM; y una emoción con puntaje cero queda sin polaridad.
func HybridPolarity(text string, llmPolarity domain.EmotionPolarity, scores domain.EmotionScores) domain.EmotionPolarity {
	lower := strings.ToLower(text)
	final := make(domain.EmotionPolarity, 2)

	lexicons := map[string][2][]string{
		domain.EmotionSurprise: {positiveSurprise, negativeSurprise},
		domain.EmotionShame:    {positiveShame, negativeShame},
	}

	for key, lex := range lexicons {
		if scores[key] == 0 {
			continue
		}
		if p, ok := ruleBasedPolarity(lower, lex[0], lex[1]); ok {
			final[key] = p
			continue
		}
		if p := llmPolarity[key]; p == domain.PolarityPositive || p == domain.PolarityNegative {
			final[key] = p
		}
	}

	return final
}
