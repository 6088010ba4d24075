package dialogue

import (
	"strings"

	"moodtown/internal/domain"
)

// Tabla fija emoción ↔ vecino del pueblo. Sincronizada con los clientes.
var characterByEmotion = map[string]string{
	domain.EmotionJoy:      "노랑이",
	domain.EmotionLove:     "초록이",
	domain.EmotionSurprise: "보라",
	domain.EmotionFear:     "남색이",
	domain.EmotionAnger:    "빨강이",
	domain.EmotionShame:    "주황이",
	domain.EmotionSadness:  "파랑이",
}

var emotionByCharacter = func() map[string]string {
	m := make(map[string]string, len(characterByEmotion))
	for emotion, character := range characterByEmotion {
		m[character] = emotion
	}
	return m
}()

// CharacterFor devuelve el nombre del vecino asociado a una emoción.
func CharacterFor(emotion string) (string, bool) {
	name, ok := characterByEmotion[emotion]
	return name, ok
}

// EmotionFor devuelve la emoción asociada a un nombre de vecino.
func EmotionFor(character string) (string, bool) {
	emotion, ok := emotionByCharacter[character]
	return emotion, ok
}

// normalizeLine completa el par vecino/emoción a partir del que esté
// presente, de forma que cualquiera de los dos campos infiere al otro.
func normalizeLine(line domain.DialogueLine) domain.DialogueLine {
	line.Character = strings.TrimSpace(line.Character)
	line.Emotion = strings.TrimSpace(line.Emotion)
	line.Text = strings.TrimSpace(line.Text)

	if line.Character == "" {
		if name, ok := characterByEmotion[line.Emotion]; ok {
			line.Character = name
		}
	}
	if line.Emotion == "" {
		if emotion, ok := emotionByCharacter[line.Character]; ok {
			line.Emotion = emotion
		}
	}
	return line
}
