package dialogue

import (
	"testing"

	"moodtown/internal/domain"
)

func TestParseTaggedJSON(t *testing.T) {
	raw := `분석 결과입니다.
<BEGIN_JSON>
{"dialogue": [
  {"캐릭터": "노랑이", "감정": "기쁨", "대사": "오늘 정말 신났어!"},
  {"캐릭터": "파랑이", "감정": "슬픔", "대사": "조금 아쉽기도 했어."}
]}
<END_JSON>`

	lines := Parse(raw)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Character != "노랑이" || lines[0].Emotion != "기쁨" {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Text != "조금 아쉽기도 했어." {
		t.Fatalf("unexpected second text: %q", lines[1].Text)
	}
}

func TestParseFencedJSONSkipsEmptyText(t *testing.T) {
	raw := "```json\n" +
		`{"dialogue": [
  {"캐릭터": "노랑이", "감정": "기쁨", "대사": "좋았어!"},
  {"캐릭터": "초록이", "감정": "사랑", "대사": "따뜻했어."},
  {"캐릭터": "보라", "감정": "놀람", "대사": "깜짝 놀랐어!"},
  {"캐릭터": "파랑이", "감정": "슬픔", "대사": ""}
]}` + "\n```"

	lines := Parse(raw)
	if len(lines) != 3 {
		t.Fatalf("expected empty-text line dropped, got %d lines", len(lines))
	}
}

func TestParseEnglishKeys(t *testing.T) {
	raw := `<BEGIN_JSON>{"dialogue": [{"character": "빨강이", "emotion": "분노", "text": "진짜 화났어!"}]}<END_JSON>`

	lines := Parse(raw)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Character != "빨강이" || lines[0].Text != "진짜 화났어!" {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestParseBareArray(t *testing.T) {
	raw := `[{"캐릭터": "남색이", "감정": "두려움", "대사": "조금 무서웠어..."}]`

	lines := Parse(raw)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Emotion != domain.EmotionFear {
		t.Fatalf("expected fear emotion, got %q", lines[0].Emotion)
	}
}

func TestParseQuotedLines(t *testing.T) {
	raw := `빨강이(분노): "화났어"
초록이(사랑): "괜찮아, 내가 있잖아"`

	lines := Parse(raw)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "화났어" {
		t.Fatalf("expected quotes stripped, got %q", lines[0].Text)
	}
	if lines[1].Character != "초록이" || lines[1].Text != "괜찮아, 내가 있잖아" {
		t.Fatalf("unexpected line: %+v", lines[1])
	}
}

func TestParsePlainLines(t *testing.T) {
	raw := `빨강이(분노): 정말 화났어
초록이(사랑): 괜찮아, 내가 있잖아`

	lines := Parse(raw)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Character != "빨강이" || lines[0].Text != "정말 화났어" {
		t.Fatalf("unexpected plain line: %+v", lines[0])
	}
}

func TestParseQuotedExtractorWinsOverPlain(t *testing.T) {
	raw := `빨강이(분노): "화났어"
초록이(사랑): 괜찮아, 내가 있잖아`

	lines := Parse(raw)
	if len(lines) != 1 {
		t.Fatalf("expected only the quoted line, got %d", len(lines))
	}
	if lines[0].Character != "빨강이" || lines[0].Text != "화났어" {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestParseEmptyAndGarbage(t *testing.T) {
	if lines := Parse(""); lines != nil {
		t.Fatalf("expected nil for empty input, got %v", lines)
	}
	if lines := Parse("그냥 자유 서술형 텍스트입니다."); lines != nil {
		t.Fatalf("expected nil for unparseable input, got %v", lines)
	}
}

func TestParseInfersCharacterFromEmotion(t *testing.T) {
	raw := `<BEGIN_JSON>{"dialogue": [{"감정": "기쁨", "대사": "최고야!"}]}<END_JSON>`

	lines := Parse(raw)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Character != "노랑이" {
		t.Fatalf("expected character inferred from emotion, got %q", lines[0].Character)
	}
}

func TestParseInfersEmotionFromCharacter(t *testing.T) {
	raw := `파랑이: "속상했겠다."`
	lines := Parse(raw)
	if lines != nil {
		// La línea sin paréntesis no sigue el formato esperado.
		t.Fatalf("expected no match for line without emotion tag, got %v", lines)
	}

	raw = `<BEGIN_JSON>{"dialogue": [{"캐릭터": "파랑이", "대사": "속상했겠다."}]}<END_JSON>`
	lines = Parse(raw)
	if len(lines) != 1 || lines[0].Emotion != domain.EmotionSadness {
		t.Fatalf("expected emotion inferred from character, got %v", lines)
	}
}

func TestCharacterTableRoundTrip(t *testing.T) {
	for _, emotion := range domain.EmotionKeys {
		name, ok := CharacterFor(emotion)
		if !ok {
			t.Fatalf("missing character for %s", emotion)
		}
		back, ok := EmotionFor(name)
		if !ok || back != emotion {
			t.Fatalf("round trip failed for %s: got %q", emotion, back)
		}
	}
}
