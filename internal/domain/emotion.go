package domain

// Etiquetas canónicas de las 7 emociones. Se mantienen en coreano porque el
// modelo de análisis y los clientes las usan tal cual como claves JSON.
const (
	EmotionJoy      = "기쁨"
	EmotionLove     = "사랑"
	EmotionSurprise = "놀람"
	EmotionFear     = "두려움"
	EmotionAnger    = "분노"
	EmotionShame    = "부끄러움"
	EmotionSadness  = "슬픔"
)

// EmotionKeys lista las 7 emociones en orden canónico.
var EmotionKeys = []string{
	EmotionJoy,
	EmotionLove,
	EmotionSurprise,
	EmotionFear,
	EmotionAnger,
	EmotionShame,
	EmotionSadness,
}

// Polarity indica cómo se clasifica una emoción ambigua en un día concreto.
// Solo 놀람 y 부끄러움 pueden tener polaridad contextual; para el resto la
// polaridad es fija y no se persiste.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// EmotionScores es una distribución normalizada (suma 100) sobre las 7 claves.
type EmotionScores map[string]int

// EmotionPolarity mapea emoción → polaridad contextual. Una clave ausente
// significa que la emoción no aporta ni al total positivo ni al negativo.
type EmotionPolarity map[string]Polarity

// AnalysisResult es la salida del análisis de emociones de un texto.
type AnalysisResult struct {
	EmotionScores   EmotionScores   `json:"emotion_scores"`
	TopEmotions     []string        `json:"top_emotions"`
	EmotionPolarity EmotionPolarity `json:"emotion_polarity"`
}
