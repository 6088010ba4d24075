package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/llm"
	"moodtown/internal/repository"
)

var ErrLetterNotFound = errors.New("letter not found")

// defaultLetter es la carta segura cuando la generación falla.
var defaultLetter = generatedLetter{
	Title:   "💌 주민들의 편지",
	Content: "안녕하세요! 주민들이 편지를 보냈어요.",
	From:    "감정 마을",
}

type generatedLetter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	From    string `json:"from"`
}

// LetterService gestiona el buzón y genera cartas con el LLM.
type LetterService struct {
	llmClient llm.Client
	letters   repository.LetterRepository
	logger    *zap.Logger
}

func NewLetterService(llmClient llm.Client, letters repository.LetterRepository, logger *zap.Logger) *LetterService {
	return &LetterService{
		llmClient: llmClient,
		letters:   letters,
		logger:    logger,
	}
}

func (s *LetterService) List(ctx context.Context, userID string) ([]domain.Letter, error) {
	return s.letters.ListAll(ctx, userID)
}

func (s *LetterService) Add(ctx context.Context, userID string, letter domain.Letter) (domain.Letter, error) {
	if strings.TrimSpace(letter.ID) == "" {
		letter.ID = uuid.NewString()
	}
	letter.UserID = userID
	if letter.From == "" {
		letter.From = defaultLetter.From
	}
	if letter.Type == "" {
		letter.Type = domain.LetterTypeNormal
	}
	if letter.CreatedAt.IsZero() {
		letter.CreatedAt = time.Now().UTC()
	}
	if letter.Date == "" {
		letter.Date = letter.CreatedAt.Format("2006-01-02")
	}
	if err := s.letters.Create(ctx, letter); err != nil {
		return domain.Letter{}, err
	}
	return letter, nil
}

func (s *LetterService) MarkRead(ctx context.Context, userID, id string) error {
	err := s.letters.MarkRead(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLetterNotFound
	}
	return err
}

func (s *LetterService) Delete(ctx context.Context, userID, id string) error {
	err := s.letters.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLetterNotFound
	}
	return err
}

func (s *LetterService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.letters.UnreadCount(ctx, userID)
}

// GenerateLetterInput reúne el contexto para la carta a generar.
type GenerateLetterInput struct {
	Type          string
	EmotionScores domain.EmotionScores
	FruitCount    int
	DiaryText     string
}

// Generate crea la carta con el LLM y la guarda en el buzón del usuario.
// Nunca falla por el LLM: ante cualquier error se usa la carta por defecto.
func (s *LetterService) Generate(ctx context.Context, userID string, input GenerateLetterInput) (domain.Letter, error) {
	content := s.generateContent(ctx, input)
	letter := domain.Letter{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     content.Title,
		Content:   content.Content,
		From:      content.From,
		Date:      time.Now().UTC().Format("2006-01-02"),
		Type:      input.Type,
		CreatedAt: time.Now().UTC(),
	}
	if letter.Type == "" {
		letter.Type = domain.LetterTypeNormal
	}
	if err := s.letters.Create(ctx, letter); err != nil {
		return domain.Letter{}, err
	}
	return letter, nil
}

func (s *LetterService) generateContent(ctx context.Context, input GenerateLetterInput) generatedLetter {
	prompt, ok := buildLetterPrompt(input)
	if !ok || s.llmClient == nil {
		return defaultLetter
	}

	reply, err := s.llmClient.Chat(ctx, []llm.Message{
		{Role: "system", Content: "당신은 감정 마을의 주민입니다. 사용자에게 따뜻하고 진심 어린 편지를 작성합니다. 반드시 JSON 형식으로만 출력하세요."},
		{Role: "user", Content: prompt},
	}, llm.Options{Temperature: 0.8, MaxTokens: 500})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("letter generation failed", zap.Error(err), zap.String("type", input.Type))
		}
		return defaultLetter
	}

	block := extractJSONPayload(reply)
	if block == "" {
		return defaultLetter
	}
	var parsed generatedLetter
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return defaultLetter
	}
	if parsed.Title == "" {
		parsed.Title = defaultLetter.Title
	}
	if parsed.Content == "" {
		parsed.Content = defaultLetter.Content
	}
	if parsed.From == "" {
		parsed.From = defaultLetter.From
	}
	return parsed
}

func buildLetterPrompt(input GenerateLetterInput) (string, bool) {
	diaryContext := ""
	if text := strings.TrimSpace(input.DiaryText); text != "" {
		preview := []rune(text)
		if len(preview) > 500 {
			preview = preview[:500]
		}
		diaryContext = fmt.Sprintf("\n\n사용자의 일기 내용 (참고용):\n--- 일기 시작 ---\n%s\n--- 일기 끝 ---\n", string(preview))
	}

	joyDesc, _ := describeCharacter(domain.EmotionJoy)
	loveDesc, _ := describeCharacter(domain.EmotionLove)

	switch input.Type {
	case domain.LetterTypeCelebration:
		return fmt.Sprintf(`당신은 감정 마을의 주민들입니다. 사용자가 행복 나무에서 %d번째 행복 열매를 얻었습니다.

주민 정보:
%s
%s

다음 규칙을 따라 축하 편지를 작성해주세요:
1. 노랑이(기쁨)와 초록이(사랑)의 말투를 사용하여 축하 메시지를 작성하세요.
2. 반말로 편하게 작성하세요.
3. 따뜻하고 기쁜 마음이 전해지는 내용으로 작성하세요.
4. 2-3문단 정도의 적당한 길이로 작성하세요.

다음 형식으로 출력하세요:
<BEGIN_JSON>
{
  "title": "편지 제목 (이모지 포함)",
  "content": "편지 내용",
  "from": "보낸이 이름 (예: 노랑이 & 초록이)"
}
<END_JSON>`, input.FruitCount, joyDesc, loveDesc), true

	case domain.LetterTypeWellOverflow:
		top := topNegativeEmotions(input.EmotionScores)
		var descs []string
		var chars []string
		var scored []string
		for _, item := range top {
			if desc, ok := describeCharacter(item.emotion); ok {
				descs = append(descs, desc)
			}
			chars = append(chars, item.character)
			scored = append(scored, fmt.Sprintf("%s(%d점)", item.emotion, item.score))
		}
		descs = append(descs, joyDesc, loveDesc)

		return fmt.Sprintf(`당신은 감정 마을의 주민들입니다. 사용자의 스트레스 우물이 넘쳤고, 다음 부정 감정들이 높았습니다: %s%s

주민 정보:
%s

다음 규칙을 따라 위로 편지를 작성해주세요:
1. 부정 감정 주민들(%s)이 각자의 말투로 위로 메시지를 작성하세요.
2. 노랑이(기쁨)와 초록이(사랑)도 따뜻한 응원 메시지를 추가하세요.
3. 반말로 편하게 작성하세요.
4. 각 주민의 말투 특징을 정확히 반영하세요.
5. 3-4문단 정도의 적당한 길이로 작성하세요.
6. 주민들의 메시지는 자연스럽게 이어지도록 작성하세요.
7. ⚠️ 일기 내용을 직접 언급하거나 요약하지 마세요. 감정에 집중하여 위로 메시지를 작성하세요.

다음 형식으로 출력하세요:
<BEGIN_JSON>
{
  "title": "편지 제목 (이모지 포함)",
  "content": "편지 내용 (주민들의 메시지를 자연스럽게 이어서 작성)",
  "from": "보낸이 이름 (예: 파랑이, 빨강이, 노랑이, 초록이)"
}
<END_JSON>`, strings.Join(scored, ", "), diaryContext, strings.Join(descs, "\n"), strings.Join(chars, ", ")), true

	case domain.LetterTypeComfort:
		return fmt.Sprintf(`당신은 감정 마을의 주민들입니다. 사용자의 일기에는 부정적인 감정들만 가득했습니다.%s

주민 정보:
%s
%s

다음 규칙을 따라 위로 편지를 작성해주세요:
1. 노랑이(기쁨)의 말투를 사용하여 위로 메시지를 작성하세요.
2. 반말로 편하게 작성하세요.
3. 따뜻하고 희망적인 내용으로 작성하세요.
4. 2-3문단 정도의 적당한 길이로 작성하세요.
5. ⚠️ 일기 내용을 직접 언급하거나 요약하지 마세요. 감정에 집중하여 위로 메시지를 작성하세요.

다음 형식으로 출력하세요:
<BEGIN_JSON>
{
  "title": "편지 제목 (이모지 포함)",
  "content": "편지 내용",
  "from": "보낸이 이름 (예: 노랑이)"
}
<END_JSON>`, diaryContext, joyDesc, loveDesc), true

	case domain.LetterTypeCheer:
		return fmt.Sprintf(`당신은 감정 마을의 주민들입니다. 사용자의 일기에는 긍정적인 감정들만 가득했습니다.%s

주민 정보:
%s

다음 규칙을 따라 응원 편지를 작성해주세요:
1. 초록이(사랑)의 말투를 사용하여 응원 메시지를 작성하세요.
2. 반말로 편하게 작성하세요.
3. 따뜻하고 기쁜 내용으로 작성하세요.
4. 2-3문단 정도의 적당한 길이로 작성하세요.
5. ⚠️ 일기 내용을 직접 언급하거나 요약하지 마세요. 감정에 집중하여 응원 메시지를 작성하세요.

다음 형식으로 출력하세요:
<BEGIN_JSON>
{
  "title": "편지 제목 (이모지 포함)",
  "content": "편지 내용",
  "from": "보낸이 이름 (예: 초록이)"
}
<END_JSON>`, diaryContext, loveDesc), true
	}

	return "", false
}

type negativeEmotionScore struct {
	emotion   string
	character string
	score     int
}

// topNegativeEmotions devuelve hasta 3 emociones negativas con puntaje,
// ordenadas de mayor a menor; si no hay ninguna cae en 슬픔 como comodín.
func topNegativeEmotions(scores domain.EmotionScores) []negativeEmotionScore {
	candidates := []string{
		domain.EmotionSadness,
		domain.EmotionAnger,
		domain.EmotionFear,
		domain.EmotionShame,
	}
	var out []negativeEmotionScore
	for _, emo := range candidates {
		score := scores[emo]
		if score <= 0 {
			continue
		}
		out = append(out, negativeEmotionScore{
			emotion:   emo,
			character: characterProfiles[emo].Name,
			score:     score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	if len(out) > 3 {
		out = out[:3]
	}
	if len(out) == 0 {
		out = []negativeEmotionScore{{
			emotion:   domain.EmotionSadness,
			character: characterProfiles[domain.EmotionSadness].Name,
		}}
	}
	return out
}
