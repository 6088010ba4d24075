package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"moodtown/internal/config"
	"moodtown/internal/llm"
	"moodtown/internal/service"
)

var residentEmotions = []string{"기쁨", "사랑", "놀람", "두려움", "분노", "부끄러움", "슬픔"}

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, logger)
	chatSvc := service.NewChatService(llmClient, service.NewMemoryChatHistoryStore(), logger)

	for {
		fmt.Println("===== Plaza de Emociones =====")
		fmt.Println("Residentes disponibles:")
		for i, emotion := range residentEmotions {
			fmt.Printf("[%d] %s\n", i+1, emotion)
		}
		fmt.Print("Selecciona residentes (ej: 1,3,5) o 'salir': ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		if strings.EqualFold(choice, "salir") || strings.EqualFold(choice, "exit") {
			return
		}

		characters := parseResidentChoice(choice)
		if len(characters) == 0 {
			fmt.Println("Seleccion invalida.")
			continue
		}

		fmt.Print("Contenido del diario de hoy (opcional, Enter para omitir): ")
		diary, _ := reader.ReadString('\n')
		diary = strings.TrimSpace(diary)

		if err := chatFlow(ctx, reader, chatSvc, characters, diary); err != nil {
			log.Printf("error en chat: %v", err)
		}
	}
}

func parseResidentChoice(choice string) []string {
	var characters []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(choice, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 1 || idx > len(residentEmotions) {
			return nil
		}
		emotion := residentEmotions[idx-1]
		if seen[emotion] {
			continue
		}
		seen[emotion] = true
		characters = append(characters, emotion)
	}
	return characters
}

func chatFlow(ctx context.Context, reader *bufio.Reader, chatSvc *service.ChatService, characters []string, diary string) error {
	date := time.Now().UTC().Format("2006-01-02")
	fmt.Printf("---- Modo Chat con %s (escribe 'salir' para terminar) ----\n", strings.Join(characters, ", "))

	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("leer input: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			fmt.Println("Saliendo del chat...")
			return nil
		}

		reply, err := chatSvc.Chat(ctx, "cli-user", service.ChatInput{
			Message:      text,
			Characters:   characters,
			Date:         date,
			DiaryContent: diary,
		})
		if err != nil {
			fmt.Printf("error generando respuesta: %v\n", err)
			continue
		}
		fmt.Printf("Plaza > %s\n", reply)
	}
}
