package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"moodtown/internal/dialogue"
	"moodtown/internal/domain"
	"moodtown/internal/llm"
	"moodtown/internal/repository"
)

var ErrConversationNotFound = errors.New("plaza conversation not found")

// PlazaService genera y guarda las conversaciones de la plaza.
type PlazaService struct {
	llmClient llm.Client
	parser    dialogue.Parser
	plazas    repository.PlazaRepository
	logger    *zap.Logger
}

func NewPlazaService(llmClient llm.Client, parser dialogue.Parser, plazas repository.PlazaRepository, logger *zap.Logger) *PlazaService {
	if parser == nil {
		parser = dialogue.ChainParser{}
	}
	return &PlazaService{
		llmClient: llmClient,
		parser:    parser,
		plazas:    plazas,
		logger:    logger,
	}
}

const dialogueSystemPrompt = "너는 사용자의 내면에 사는 감정 주민들의 대화를 쓰는 작가야. " +
	"주민들은 사용자의 일기를 읽고 자신의 감정을 1인칭(당사자) 관점으로 표현한다. " +
	"제3자 관점이 아닌 '나'의 입장에서 말한다."

// GenerateDialogue pide al LLM la conversación de los vecinos sobre el diario
// y devuelve la respuesta cruda; el parser la convierte después en líneas.
func (s *PlazaService) GenerateDialogue(ctx context.Context, diaryText string, topEmotions []string) (string, error) {
	if s.llmClient == nil {
		return "", errors.New("plaza service not configured")
	}

	var descriptions []string
	for _, emo := range topEmotions {
		if desc, ok := describeCharacter(emo); ok {
			descriptions = append(descriptions, "- "+desc)
		}
	}

	prompt := fmt.Sprintf(
		"당신은 사용자의 내면에 사는 감정 주민들입니다. 다음 일기는 사용자가 직접 작성한 것입니다.\n\n"+
			"참여하는 주민들:\n%s\n\n"+
			"사용자의 일기:\n%s\n\n"+
			"이 주민들은 사용자의 내면의 목소리입니다. 일기에 대해 제3자처럼 말하지 말고, 당사자(1인칭)처럼 말하세요.\n"+
			"예를 들어:\n"+
			"- ❌ 잘못된 예: '친구들과 놀았다니 정말 좋았겠다!'\n"+
			"- ✅ 올바른 예: '친구들이랑 놀아서 정말 좋았어!'\n\n"+
			"각 주민은 자신의 감정과 말투에 맞게 일기에서 느낀 감정을 1인칭으로 표현합니다.\n"+
			"대사는 일기에서 언급된 구체적인 내용을 반영하며, 사용자의 입장에서 자연스럽게 대화하세요.\n"+
			"각 캐릭터는 최소 1번씩 말하며, 총 4-6턴의 대화를 만들어주세요.\n\n"+
			"대사는 JSON 형식으로 출력하세요:\n"+
			"<BEGIN_JSON>\n"+
			"{\"dialogue\": [{\"캐릭터\": \"이름\", \"감정\": \"감정명\", \"대사\": \"내용\"}, ...]}\n"+
			"<END_JSON>",
		strings.Join(descriptions, "\n"),
		diaryText,
	)

	reply, err := s.llmClient.Chat(ctx, []llm.Message{
		{Role: "system", Content: dialogueSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.Options{Temperature: 0.8, MaxTokens: 600})
	if err != nil {
		return "", fmt.Errorf("generate dialogue: %w", err)
	}
	return reply, nil
}

// ParseDialogue convierte la respuesta cruda del LLM en líneas normalizadas.
func (s *PlazaService) ParseDialogue(raw string) []domain.DialogueLine {
	return s.parser.Parse(raw)
}

func (s *PlazaService) GetByDate(ctx context.Context, userID, date string) (domain.PlazaConversation, error) {
	conv, err := s.plazas.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.PlazaConversation{}, ErrConversationNotFound
		}
		return domain.PlazaConversation{}, err
	}
	return conv, nil
}

func (s *PlazaService) Save(ctx context.Context, userID string, conv domain.PlazaConversation) error {
	if strings.TrimSpace(conv.Date) == "" {
		return errors.New("plaza conversation requires a date")
	}
	normalized := make([]domain.DialogueLine, 0, len(conv.Conversation))
	for _, line := range conv.Conversation {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		normalized = append(normalized, line)
	}
	conv.Conversation = normalized
	return s.plazas.Save(ctx, userID, conv)
}

func (s *PlazaService) DeleteByDate(ctx context.Context, userID, date string) error {
	return s.plazas.DeleteByDate(ctx, userID, date)
}
