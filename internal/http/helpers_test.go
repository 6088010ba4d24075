package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/llm"
	"moodtown/internal/repository"
	"moodtown/internal/service"
)

type mockUserRepo struct {
	usersByID       map[string]domain.User
	usersByUsername map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:       make(map[string]domain.User),
		usersByUsername: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	m.usersByUsername[user.Username] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	id, ok := m.usersByUsername[username]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return m.usersByID[id], nil
}

type mockDiaryRepo struct {
	diaries    map[string]domain.Diary
	embeddings map[string]pgvector.Vector
	searchHits []domain.Diary
	searchSims []float64
}

func newMockDiaryRepo() *mockDiaryRepo {
	return &mockDiaryRepo{
		diaries:    make(map[string]domain.Diary),
		embeddings: make(map[string]pgvector.Vector),
	}
}

func (m *mockDiaryRepo) Save(_ context.Context, diary domain.Diary) error {
	m.diaries[diary.ID] = diary
	return nil
}

func (m *mockDiaryRepo) ListAll(_ context.Context, _ string) ([]domain.Diary, error) {
	var out []domain.Diary
	for _, diary := range m.diaries {
		out = append(out, diary)
	}
	return out, nil
}

func (m *mockDiaryRepo) ListByDate(_ context.Context, _ string, date string) ([]domain.Diary, error) {
	var out []domain.Diary
	for _, diary := range m.diaries {
		if diary.Date == date {
			out = append(out, diary)
		}
	}
	return out, nil
}

func (m *mockDiaryRepo) GetByID(_ context.Context, _ string, id string) (domain.Diary, error) {
	diary, ok := m.diaries[id]
	if !ok {
		return domain.Diary{}, repository.ErrNotFound
	}
	return diary, nil
}

func (m *mockDiaryRepo) Delete(_ context.Context, _ string, id string) error {
	if _, ok := m.diaries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.diaries, id)
	return nil
}

func (m *mockDiaryRepo) DeleteByDate(_ context.Context, _ string, date string) error {
	for id, diary := range m.diaries {
		if diary.Date == date {
			delete(m.diaries, id)
		}
	}
	return nil
}

func (m *mockDiaryRepo) SaveEmbedding(_ context.Context, _ string, id string, embedding pgvector.Vector) error {
	m.embeddings[id] = embedding
	return nil
}

func (m *mockDiaryRepo) SearchByEmbedding(_ context.Context, _ string, _ pgvector.Vector, _ int) ([]domain.Diary, []float64, error) {
	return m.searchHits, m.searchSims, nil
}

func (m *mockDiaryRepo) CountEmbedded(_ context.Context, _ string) (int, error) {
	return len(m.embeddings), nil
}

type mockTreeRepo struct {
	growth        int
	lastFruitDate *string
	fruitCount    int
}

func (m *mockTreeRepo) GetState(_ context.Context, _ string) (int, *string, error) {
	return m.growth, m.lastFruitDate, nil
}

func (m *mockTreeRepo) SaveState(_ context.Context, _ string, growth int, lastFruitDate *string) error {
	m.growth = growth
	m.lastFruitDate = lastFruitDate
	return nil
}

func (m *mockTreeRepo) GetFruitCount(_ context.Context, _ string) (int, error) {
	return m.fruitCount, nil
}

func (m *mockTreeRepo) SaveFruitCount(_ context.Context, _ string, count int) error {
	m.fruitCount = count
	return nil
}

type mockWellRepo struct {
	level            int
	overflowing      bool
	lastOverflowDate *string
}

func (m *mockWellRepo) GetState(_ context.Context, _ string) (int, bool, *string, error) {
	return m.level, m.overflowing, m.lastOverflowDate, nil
}

func (m *mockWellRepo) SaveState(_ context.Context, _ string, level int, overflowing bool, lastOverflowDate *string) error {
	m.level = level
	m.overflowing = overflowing
	m.lastOverflowDate = lastOverflowDate
	return nil
}

type mockSummaryRepo struct {
	summaries map[string]domain.DaySummary
}

func newMockSummaryRepo() *mockSummaryRepo {
	return &mockSummaryRepo{summaries: make(map[string]domain.DaySummary)}
}

func (m *mockSummaryRepo) Upsert(_ context.Context, _ string, summary domain.DaySummary) error {
	m.summaries[summary.Date] = summary
	return nil
}

func (m *mockSummaryRepo) GetByDate(_ context.Context, _ string, date string) (domain.DaySummary, error) {
	summary, ok := m.summaries[date]
	if !ok {
		return domain.DaySummary{}, repository.ErrNotFound
	}
	return summary, nil
}

func (m *mockSummaryRepo) DeleteByDate(_ context.Context, _ string, date string) error {
	delete(m.summaries, date)
	return nil
}

type mockLetterRepo struct {
	letters []domain.Letter
}

func (m *mockLetterRepo) Create(_ context.Context, letter domain.Letter) error {
	m.letters = append(m.letters, letter)
	return nil
}

func (m *mockLetterRepo) ListAll(_ context.Context, _ string) ([]domain.Letter, error) {
	return m.letters, nil
}

func (m *mockLetterRepo) MarkRead(_ context.Context, _ string, id string) error {
	for i := range m.letters {
		if m.letters[i].ID == id {
			m.letters[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockLetterRepo) Delete(_ context.Context, _ string, id string) error {
	for i := range m.letters {
		if m.letters[i].ID == id {
			m.letters = append(m.letters[:i], m.letters[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockLetterRepo) UnreadCount(_ context.Context, _ string) (int, error) {
	count := 0
	for _, letter := range m.letters {
		if !letter.IsRead {
			count++
		}
	}
	return count, nil
}

type mockPlazaRepo struct {
	conversations map[string]domain.PlazaConversation
}

func newMockPlazaRepo() *mockPlazaRepo {
	return &mockPlazaRepo{conversations: make(map[string]domain.PlazaConversation)}
}

func (m *mockPlazaRepo) GetByDate(_ context.Context, _ string, date string) (domain.PlazaConversation, error) {
	conv, ok := m.conversations[date]
	if !ok {
		return domain.PlazaConversation{}, repository.ErrNotFound
	}
	return conv, nil
}

func (m *mockPlazaRepo) Save(_ context.Context, _ string, conv domain.PlazaConversation) error {
	m.conversations[conv.Date] = conv
	return nil
}

func (m *mockPlazaRepo) DeleteByDate(_ context.Context, _ string, date string) error {
	delete(m.conversations, date)
	return nil
}

// testEnv monta el router completo sobre repos en memoria y un LLM falso.
type testEnv struct {
	router    *gin.Engine
	sessions  *service.SessionService
	llmClient *llm.MockClient
	users     *mockUserRepo
	diaries   *mockDiaryRepo
	trees     *mockTreeRepo
	wells     *mockWellRepo
	summaries *mockSummaryRepo
	letters   *mockLetterRepo
	plazas    *mockPlazaRepo
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	env := &testEnv{
		llmClient: &llm.MockClient{Response: "응답", Embedding: []float32{0.1, 0.2}},
		users:     newMockUserRepo(),
		diaries:   newMockDiaryRepo(),
		trees:     &mockTreeRepo{},
		wells:     &mockWellRepo{},
		summaries: newMockSummaryRepo(),
		letters:   &mockLetterRepo{},
		plazas:    newMockPlazaRepo(),
	}
	env.sessions = service.NewSessionService("test-secret", time.Hour)

	userSvc := service.NewUserService(env.users, logger)
	analysisSvc := service.NewAnalysisService(env.llmClient, logger)
	letterSvc := service.NewLetterService(env.llmClient, env.letters, logger)
	gardenSvc := service.NewGardenService(env.trees, env.wells, env.summaries, letterSvc, logger)
	diarySvc := service.NewDiaryService(env.diaries, env.plazas, gardenSvc, env.llmClient, logger)
	similaritySvc := service.NewSimilarityService(env.diaries, env.llmClient, logger)
	plazaSvc := service.NewPlazaService(env.llmClient, nil, env.plazas, logger)
	chatSvc := service.NewChatService(env.llmClient, nil, logger)
	statsSvc := service.NewStatsService(env.diaries)

	env.router = NewRouter(
		logger,
		env.sessions,
		NewAuthHandler(logger, userSvc, env.sessions, false),
		NewAnalysisHandler(logger, analysisSvc, plazaSvc, nil),
		NewChatHandler(logger, chatSvc),
		NewDiaryHandler(logger, diarySvc, similaritySvc),
		NewGardenHandler(logger, gardenSvc),
		NewLetterHandler(logger, letterSvc),
		NewPlazaHandler(logger, plazaSvc),
		NewStatsHandler(logger, statsSvc),
	)
	return env
}

// sessionCookie emite una sesión válida para un usuario de prueba.
func (env *testEnv) sessionCookie(user domain.User) *http.Cookie {
	if _, ok := env.users.usersByID[user.ID]; !ok {
		_ = env.users.Create(context.Background(), user)
	}
	token, _ := env.sessions.Issue(user)
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func performRequest(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return out
}
