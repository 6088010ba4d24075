package emotion

import (
	"sort"
	"strings"

	"moodtown/internal/domain"
)

// localBuckets asocia palabras gatillo a cada emoción para el analizador
// local. No pretende competir con el LLM: es el modo de demostración "ml",
// determinista y sin llamadas externas.
var localBuckets = map[string][]string{
	domain.EmotionJoy: {
		"기뻐", "기쁘", "행복", "즐거", "신나", "재밌", "웃었", "좋았", "좋은 하루", "최고",
	},
	domain.EmotionLove: {
		"사랑", "좋아해", "고마워", "감사", "따뜻", "소중", "보고 싶", "애정", "다정",
	},
	domain.EmotionSurprise: {
		"놀랐", "깜짝", "갑자기", "뜻밖", "예상 못", "어머", "헉", "세상에",
	},
	domain.EmotionFear: {
		"무서", "두려", "불안", "걱정", "겁나", "떨렸", "긴장", "무섭",
	},
	domain.EmotionAnger: {
		"화나", "화났", "짜증", "분노", "열받", "억울", "싫어", "미치겠",
	},
	domain.EmotionShame: {
		"부끄러", "창피", "민망", "쑥스러", "얼굴이 빨개", "머쓱",
	},
	domain.EmotionSadness: {
		"슬프", "슬펐", "울었", "눈물", "우울", "외로", "속상", "서러", "그리워",
	},
}

// AnalyzeLocal puntúa un texto con léxicos de palabras clave y devuelve una
// distribución normalizada más la etiqueta dominante. Sin efectos sobre el
// estado del servidor.
func AnalyzeLocal(text string) (label string, scores domain.EmotionScores) {
	lower := strings.ToLower(text)

	raw := make(map[string]float64, len(domain.EmotionKeys))
	for key, words := range localBuckets {
		raw[key] = float64(3 * countHits(lower, words))
	}

	scores = Normalize(raw)

	label = domain.EmotionJoy
	keys := append([]string(nil), domain.EmotionKeys...)
	sort.SliceStable(keys, func(i, j int) bool { return scores[keys[i]] > scores[keys[j]] })
	if scores[keys[0]] > 0 {
		label = keys[0]
	}
	return label, scores
}

// TopEmotions devuelve las emociones con puntaje > 0 en orden descendente.
// Si ninguna supera cero, devuelve un cuarteto por defecto para que la plaza
// nunca quede vacía.
func TopEmotions(scores domain.EmotionScores) []string {
	keys := append([]string(nil), domain.EmotionKeys...)
	sort.SliceStable(keys, func(i, j int) bool { return scores[keys[i]] > scores[keys[j]] })

	var top []string
	for _, key := range keys {
		if scores[key] > 0 {
			top = append(top, key)
		}
	}
	if len(top) == 0 {
		top = []string{domain.EmotionJoy, domain.EmotionLove, domain.EmotionSurprise, domain.EmotionSadness}
	}
	return top
}
