package dialogue

import (
	"encoding/json"
	"regexp"
	"strings"

	"moodtown/internal/domain"
)

// Parser extrae líneas de diálogo estructuradas de la salida libre de un LLM.
// La interfaz aísla a los llamadores del formato concreto de la respuesta.
type Parser interface {
	Parse(text string) []domain.DialogueLine
}

// ChainParser prueba una cadena ordenada de extractores y devuelve el primer
// resultado no vacío. Nunca falla: si ningún extractor reconoce el texto,
// devuelve una lista vacía.
type ChainParser struct{}

var (
	taggedJSONRe  = regexp.MustCompile(`(?is)<BEGIN_JSON>(.*?)<END_JSON>`)
	fencedJSONRe  = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")
	bareObjectRe  = regexp.MustCompile(`(?s)\{.*"dialogue".*\}`)
	bareArrayRe   = regexp.MustCompile(`(?s)\[.*\{.*"(?:캐릭터|character)".*\}.*\]`)
	quotedLineRe  = regexp.MustCompile(`(?m)^\s*-?\s*([^\s(]+)\(([^)]+)\)\s*[:：]\s*["“](.+?)["”]\s*$`)
	plainLineRe   = regexp.MustCompile(`(?m)^\s*-?\s*([^\s(]+)\(([^)]+)\)\s*[:：]\s*(.+?)\s*$`)
)

// rawLine acepta tanto las claves coreanas del prompt como sus alias en
// inglés que algunos modelos devuelven.
type rawLine struct {
	CharacterKo string `json:"캐릭터"`
	EmotionKo   string `json:"감정"`
	TextKo      string `json:"대사"`
	Character   string `json:"character"`
	Emotion     string `json:"emotion"`
	Text        string `json:"text"`
	Dialogue    string `json:"dialogue"`
}

func (r rawLine) toLine() domain.DialogueLine {
	character := r.CharacterKo
	if character == "" {
		character = r.Character
	}
	emotion := r.EmotionKo
	if emotion == "" {
		emotion = r.Emotion
	}
	text := r.TextKo
	if text == "" {
		text = r.Text
	}
	if text == "" {
		text = r.Dialogue
	}
	return domain.DialogueLine{Character: character, Emotion: emotion, Text: text}
}

// Parse implementa Parser.
func (ChainParser) Parse(text string) []domain.DialogueLine {
	return Parse(text)
}

// Parse recorre los extractores en orden y devuelve el primer resultado no
// vacío, ya filtrado y con los pares vecino/emoción normalizados.
func Parse(text string) []domain.DialogueLine {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	extractors := []func(string) []domain.DialogueLine{
		extractTaggedJSON,
		extractFencedJSON,
		extractBareObject,
		extractBareArray,
		extractQuotedLines,
		extractPlainLines,
	}
	for _, extract := range extractors {
		if lines := finishLines(extract(text)); len(lines) > 0 {
			return lines
		}
	}
	return nil
}

// finishLines descarta entradas sin texto y normaliza el par vecino/emoción.
func finishLines(lines []domain.DialogueLine) []domain.DialogueLine {
	var out []domain.DialogueLine
	for _, line := range lines {
		line = normalizeLine(line)
		if line.Text == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func parseDialoguePayload(jsonText string) []domain.DialogueLine {
	var payload struct {
		Dialogue []rawLine `json:"dialogue"`
	}
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil
	}
	return rawToLines(payload.Dialogue)
}

func rawToLines(raws []rawLine) []domain.DialogueLine {
	lines := make([]domain.DialogueLine, 0, len(raws))
	for _, r := range raws {
		lines = append(lines, r.toLine())
	}
	return lines
}

func extractTaggedJSON(text string) []domain.DialogueLine {
	m := taggedJSONRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return parseDialoguePayload(strings.TrimSpace(m[1]))
}

func extractFencedJSON(text string) []domain.DialogueLine {
	m := fencedJSONRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return parseDialoguePayload(strings.TrimSpace(m[1]))
}

func extractBareObject(text string) []domain.DialogueLine {
	candidate := bareObjectRe.FindString(text)
	if candidate == "" {
		return nil
	}
	if lines := parseDialoguePayload(candidate); lines != nil {
		return lines
	}
	// Reintento para salidas truncadas: cortar en la última llave anterior.
	if last := strings.LastIndex(candidate[:len(candidate)-1], "}"); last > 0 {
		return parseDialoguePayload(candidate[:last+1])
	}
	return nil
}

func extractBareArray(text string) []domain.DialogueLine {
	candidate := bareArrayRe.FindString(text)
	if candidate == "" {
		return nil
	}
	var raws []rawLine
	if err := json.Unmarshal([]byte(candidate), &raws); err != nil {
		return nil
	}
	return rawToLines(raws)
}

func extractQuotedLines(text string) []domain.DialogueLine {
	return extractByLineRe(text, quotedLineRe)
}

// extractPlainLines es la variante permisiva: no exige comillas alrededor del
// texto, pero las quita si vienen.
func extractPlainLines(text string) []domain.DialogueLine {
	lines := extractByLineRe(text, plainLineRe)
	for i, line := range lines {
		lines[i].Text = strings.Trim(line.Text, `"“”`)
	}
	return lines
}

func extractByLineRe(text string, re *regexp.Regexp) []domain.DialogueLine {
	var lines []domain.DialogueLine
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		lines = append(lines, domain.DialogueLine{
			Character: m[1],
			Emotion:   m[2],
			Text:      m[3],
		})
	}
	return lines
}
