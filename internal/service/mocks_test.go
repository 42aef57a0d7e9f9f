package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/promptfolio-backend/internal/ai"
	"github.com/ignatzorin/promptfolio-backend/internal/github"
	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/repository"
)

type memPortfolioStore struct {
	mu         sync.Mutex
	portfolios map[uuid.UUID]*models.Portfolio
	sections   []models.PortfolioSection
	insertErr  error
}

func newMemPortfolioStore(portfolios ...*models.Portfolio) *memPortfolioStore {
	m := &memPortfolioStore{portfolios: make(map[uuid.UUID]*models.Portfolio)}
	for _, p := range portfolios {
		m.portfolios[p.ID] = p
	}
	return m
}

func (m *memPortfolioStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.portfolios[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrPortfolioNotFound
}

func (m *memPortfolioStore) ListSections(ctx context.Context, portfolioID uuid.UUID) ([]models.PortfolioSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.PortfolioSection, 0)
	for _, s := range m.sections {
		if s.PortfolioID == portfolioID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memPortfolioStore) InsertSections(ctx context.Context, sections []models.PortfolioSection) ([]models.PortfolioSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	out := make([]models.PortfolioSection, 0, len(sections))
	for _, s := range sections {
		s.ID = uuid.New()
		s.CreatedAt = time.Now()
		out = append(out, s)
	}
	m.sections = append(m.sections, out...)
	return out, nil
}

type memProjectStore struct {
	mu        sync.Mutex
	byRepo    map[string]*models.Project
	recent    []models.Project
	createErr error
}

func newMemProjectStore() *memProjectStore {
	return &memProjectStore{byRepo: make(map[string]*models.Project)}
}

func (m *memProjectStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Project, error) {
	if len(m.recent) > limit {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

func (m *memProjectStore) CreateIfAbsent(ctx context.Context, p *models.Project) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return false, m.createErr
	}
	key := p.UserID.String() + "|" + *p.GitHubRepo
	if _, ok := m.byRepo[key]; ok {
		return false, nil
	}
	p.ID = uuid.New()
	m.byRepo[key] = p
	return true, nil
}

type memStoryStore struct {
	stories   []models.Story
	createErr error
}

func (m *memStoryStore) Create(ctx context.Context, s *models.Story) error {
	if m.createErr != nil {
		return m.createErr
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	m.stories = append(m.stories, *s)
	return nil
}

func (m *memStoryStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Story, error) {
	out := make([]models.Story, 0)
	for _, s := range m.stories {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type mockProfileStore struct {
	mock.Mock
}

func (m *mockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type fakeRepoLister struct {
	repos []github.Repo
	err   error
	calls int
}

func (f *fakeRepoLister) ListUserRepos(ctx context.Context, username string) ([]github.Repo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.repos, nil
}

// fakeGateway поднимает AI шлюз, который отвечает заданным статусом и телом, и считает вызовы.
type fakeGateway struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newFakeGateway(t *testing.T, status int, body string) *fakeGateway {
	t.Helper()
	g := &fakeGateway{}
	g.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.calls.Add(1)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(g.server.Close)
	return g
}

func (g *fakeGateway) client() *ai.Client {
	return ai.NewClient(g.server.URL, "test-model", "test-key", 5*time.Second)
}

func completion(content string) string {
	raw, _ := json.Marshal(content)
	return `{"choices":[{"message":{"content":` + string(raw) + `}}]}`
}

func strPtr(s string) *string { return &s }
