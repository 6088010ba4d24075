package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"moodtown/internal/llm"
)

var (
	ErrChatMessageEmpty = errors.New("chat message empty")
	ErrChatNoCharacters = errors.New("chat characters required")
)

// ChatService conversa con los vecinos-emoción manteniendo el historial de
// la sesión por usuario y fecha.
type ChatService struct {
	llmClient llm.Client
	history   ChatHistoryStore
	logger    *zap.Logger
}

func NewChatService(llmClient llm.Client, history ChatHistoryStore, logger *zap.Logger) *ChatService {
	if history == nil {
		history = NewMemoryChatHistoryStore()
	}
	return &ChatService{
		llmClient: llmClient,
		history:   history,
		logger:    logger,
	}
}

// ChatInput es un turno del usuario en la plaza.
type ChatInput struct {
	Message      string
	Characters   []string
	Date         string
	DiaryContent string
}

const chatSystemPrompt = "너는 사용자의 내면 감정을 대표하는 '감정 주민'입니다. " +
	"사용자의 메시지를 듣고, 각자의 감정 스타일에 맞게 자연스럽게 반말로 대답합니다."

func (s *ChatService) Chat(ctx context.Context, userID string, input ChatInput) (string, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return "", ErrChatMessageEmpty
	}
	if len(input.Characters) == 0 {
		return "", ErrChatNoCharacters
	}
	if s.llmClient == nil {
		return "", errors.New("chat service not configured")
	}

	var descriptions []string
	for _, emo := range input.Characters {
		if desc, ok := describeCharacter(emo); ok {
			descriptions = append(descriptions, desc)
		}
	}

	messages := []llm.Message{{Role: "system", Content: chatSystemPrompt}}
	past, err := s.history.History(ctx, userID, input.Date)
	if err != nil {
		s.logger.Warn("chat history load failed", zap.Error(err), zap.String("user_id", userID))
	} else {
		messages = append(messages, past...)
	}

	userMessage := "나: " + message
	messages = append(messages, llm.Message{Role: "user", Content: userMessage})
	if err := s.history.Append(ctx, userID, input.Date, llm.Message{Role: "user", Content: userMessage}); err != nil {
		s.logger.Warn("chat history append failed", zap.Error(err), zap.String("user_id", userID))
	}

	messages = append(messages, llm.Message{Role: "user", Content: buildChatPrompt(message, input.DiaryContent, descriptions)})

	reply, err := s.llmClient.Chat(ctx, messages, llm.Options{Temperature: 0.8, MaxTokens: 400})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if err := s.history.Append(ctx, userID, input.Date, llm.Message{Role: "assistant", Content: reply}); err != nil {
		s.logger.Warn("chat history append failed", zap.Error(err), zap.String("user_id", userID))
	}
	return reply, nil
}

func buildChatPrompt(message, diaryContent string, characterDescriptions []string) string {
	diarySection := ""
	if text := strings.TrimSpace(diaryContent); text != "" {
		diarySection = fmt.Sprintf(
			"\n\n📝 오늘 작성한 일기:\n\n%s\n\n"+
				"⚠️ 참고사항:\n"+
				"- 이 일기는 사용자가 오늘 작성한 내용입니다.\n"+
				"- 주민들은 이 일기 내용을 참고하여 사용자의 감정 상태를 이해할 수 있습니다.\n"+
				"- 일기의 구체적인 내용이나 세부 사항을 언급할 수 있지만, 일기를 그대로 읽어주지는 않습니다.\n"+
				"- 일기의 감정과 맥락을 바탕으로 사용자에게 자연스럽게 대화합니다.\n",
			text,
		)
	}

	return fmt.Sprintf(
		"당신은 사용자의 내면 감정을 대표하는 '감정 주민'입니다.\n\n"+
			"사용자의 메시지를 듣고, 각자의 감정 스타일에 맞게 자연스럽게 반말로 대답합니다.\n\n"+
			"🎯 핵심 규칙\n\n"+
			"1) 주민들은 사용자에게 직접 말합니다.\n"+
			"2) \"너\", \"네가\", \"너한테\" 같은 표현 사용 가능.\n"+
			"3) 감정 표현은 1인칭('나')으로 표현합니다.\n"+
			"4) 말투는 스타일 + speech_hints 기반.\n"+
			"5) 제3자 분석·심리평가 금지.\n"+
			"6) JSON 출력 금지, 대사만 출력.\n\n"+
			"⚠️ 중요한 구분\n"+
			"- 이 대화는 사용자에게 직접 말하는 대화입니다.\n"+
			"- \"너\", \"네가\", \"그치?\" 같은 표현을 사용하여 사용자와 자연스럽게 대화합니다.\n"+
			"- 주민들은 사용자의 감정을 자신이 느끼는 것처럼 표현하면서도, 사용자와 명확히 구분되어 대화합니다.\n\n"+
			"🧩 말하는 방식 예시\n\n"+
			"사용자: 화가 나고 속상해서 기분이 안 좋아...\n"+
			"대화:\n"+
			"- 빨강이(분노): \"그러니까! 진짜 화났어. 그치?\"\n"+
			"- 초록이(사랑): \"너가 좋아하는 것들을 떠올려 봐. 기분이 나아질 거야.\"\n"+
			"- 파랑이(슬픔): \"그래도 많이 속상했겠다. 괜찮아?\"\n\n"+
			"%s"+
			"📘 사용자 메시지:\n\n%s\n\n"+
			"현재 등장한 주민:\n%s\n\n"+
			"이제 각 주민이 한 줄씩 순서대로 사용자에게 말하세요.\n\n"+
			"출력 형식:\n"+
			"주민이름(감정명): \"대사 내용\"\n"+
			"예:\n"+
			"빨강이(분노): \"그러니까! 진짜 화났어. 그치?\"\n"+
			"초록이(사랑): \"좋게 생각하자. 너가 좋아하는 것들을 떠올려 봐.\"",
		diarySection,
		message,
		strings.Join(characterDescriptions, "\n"),
	)
}
