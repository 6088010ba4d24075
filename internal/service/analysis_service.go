package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/emotion"
	"moodtown/internal/llm"
)

// AnalysisService analiza el texto de un diario y produce la distribución
// de las 7 emociones junto con la polaridad contextual.
type AnalysisService struct {
	llmClient llm.Client
	logger    *zap.Logger
}

func NewAnalysisService(llmClient llm.Client, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		llmClient: llmClient,
		logger:    logger,
	}
}

// defaultScores se usa cuando el LLM falla o devuelve todo en cero.
var defaultScores = map[string]float64{
	domain.EmotionJoy:      25,
	domain.EmotionLove:     20,
	domain.EmotionSurprise: 15,
	domain.EmotionFear:     10,
	domain.EmotionAnger:    10,
	domain.EmotionShame:    10,
	domain.EmotionSadness:  10,
}

var defaultTopEmotions = []string{
	domain.EmotionJoy,
	domain.EmotionLove,
	domain.EmotionSurprise,
	domain.EmotionSadness,
}

const analysisPrompt = `당신은 감정 분석 전문가입니다.

다음 일기를 읽고 7가지 감정(기쁨, 사랑, 놀람, 두려움, 분노, 부끄러움, 슬픔)을
0~100 정수로 분석하세요.

<BEGIN_JSON>
{
  "emotion_scores": {
    "기쁨": 0,
    "사랑": 0,
    "놀람": 0,
    "두려움": 0,
    "분노": 0,
    "부끄러움": 0,
    "슬픔": 0
  },
  "emotion_polarity": {
    "놀람": null,
    "부끄러움": null
  }
}
<END_JSON>

일기:
%s

JSON만 출력하세요.`

type llmAnalysisPayload struct {
	EmotionScores   map[string]json.Number `json:"emotion_scores"`
	EmotionPolarity map[string]*string     `json:"emotion_polarity"`
}

// Analyze nunca devuelve error: si el LLM falla se usan los valores por
// defecto, igual que hace el clasificador híbrido original.
func (s *AnalysisService) Analyze(ctx context.Context, diaryText string) domain.AnalysisResult {
	raw, llmPolarity := s.requestScores(ctx, diaryText)

	scores := emotion.Normalize(raw)
	polarity := emotion.HybridPolarity(diaryText, llmPolarity, scores)
	top := emotion.TopEmotions(scores)
	if len(top) == 0 {
		top = append([]string(nil), defaultTopEmotions...)
	}

	return domain.AnalysisResult{
		EmotionScores:   scores,
		TopEmotions:     top,
		EmotionPolarity: polarity,
	}
}

// AnalyzeLocal corre el clasificador local sin LLM (modo "ml").
func (s *AnalysisService) AnalyzeLocal(text string) (string, domain.EmotionScores) {
	return emotion.AnalyzeLocal(text)
}

func (s *AnalysisService) requestScores(ctx context.Context, diaryText string) (map[string]float64, domain.EmotionPolarity) {
	fallback := func() (map[string]float64, domain.EmotionPolarity) {
		copied := make(map[string]float64, len(defaultScores))
		for k, v := range defaultScores {
			copied[k] = v
		}
		return copied, nil
	}

	if s.llmClient == nil {
		return fallback()
	}

	messages := []llm.Message{
		{Role: "system", Content: "감정 분석만 수행. JSON 이외 출력 금지."},
		{Role: "user", Content: fmt.Sprintf(analysisPrompt, diaryText)},
	}
	reply, err := s.llmClient.Chat(ctx, messages, llm.Options{Temperature: 0.1, MaxTokens: 400})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("emotion analysis llm call failed", zap.Error(err))
		}
		return fallback()
	}

	block := extractJSONPayload(reply)
	if block == "" {
		return fallback()
	}
	var parsed llmAnalysisPayload
	if err := json.Unmarshal([]byte(block), &parsed); err != nil || len(parsed.EmotionScores) == 0 {
		if s.logger != nil {
			s.logger.Warn("emotion analysis response unparseable", zap.Error(err))
		}
		return fallback()
	}

	raw := make(map[string]float64, len(domain.EmotionKeys))
	total := 0.0
	for _, key := range domain.EmotionKeys {
		v, err := parsed.EmotionScores[key].Float64()
		if err != nil || v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		raw[key] = v
		total += v
	}
	if total == 0 {
		return fallback()
	}

	polarity := make(domain.EmotionPolarity)
	for key, val := range parsed.EmotionPolarity {
		if val == nil {
			continue
		}
		switch domain.Polarity(*val) {
		case domain.PolarityPositive, domain.PolarityNegative:
			polarity[key] = domain.Polarity(*val)
		}
	}
	return raw, polarity
}
