package httpserver_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"moviedb/aka"
	"moviedb/crew"
	"moviedb/episode"
	"moviedb/httpserver"
	"moviedb/person"
	"moviedb/pkg/query"
	"moviedb/principal"
	"moviedb/title"
)

type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, f title.Filter, p query.Page) (query.Paged[title.Title], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[title.Title]), args.Error(1)
}

func (m *MockTitleService) Search(ctx context.Context, f title.SearchFilter, p query.Page) (query.Paged[title.Title], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[title.Title]), args.Error(1)
}

func (m *MockTitleService) Get(ctx context.Context, tconst string) (title.Title, error) {
	args := m.Called(ctx, tconst)
	return args.Get(0).(title.Title), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, t title.Title) (title.Title, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(title.Title), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, tconst string, p title.Patch) (title.Title, error) {
	args := m.Called(ctx, tconst, p)
	return args.Get(0).(title.Title), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, tconst string) error {
	return m.Called(ctx, tconst).Error(0)
}

type MockPersonService struct {
	mock.Mock
}

func (m *MockPersonService) List(ctx context.Context, f person.Filter, p query.Page) (query.Paged[person.Person], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[person.Person]), args.Error(1)
}

func (m *MockPersonService) Search(ctx context.Context, f person.SearchFilter, p query.Page) (query.Paged[person.Person], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[person.Person]), args.Error(1)
}

func (m *MockPersonService) Get(ctx context.Context, nconst string, includeTitles bool) (person.Person, error) {
	args := m.Called(ctx, nconst, includeTitles)
	return args.Get(0).(person.Person), args.Error(1)
}

func (m *MockPersonService) Create(ctx context.Context, p person.Person) (person.Person, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(person.Person), args.Error(1)
}

func (m *MockPersonService) Update(ctx context.Context, nconst string, p person.Patch) (person.Person, error) {
	args := m.Called(ctx, nconst, p)
	return args.Get(0).(person.Person), args.Error(1)
}

func (m *MockPersonService) Delete(ctx context.Context, nconst string) error {
	return m.Called(ctx, nconst).Error(0)
}

type MockPrincipalService struct {
	mock.Mock
}

func (m *MockPrincipalService) List(ctx context.Context, f principal.Filter, p query.Page) (query.Paged[principal.CastMember], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[principal.CastMember]), args.Error(1)
}

func (m *MockPrincipalService) Cast(ctx context.Context, f principal.Filter, p query.Page) (query.Paged[principal.CastMember], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[principal.CastMember]), args.Error(1)
}

func (m *MockPrincipalService) Get(ctx context.Context, tconst, nconst string) (principal.CastMember, error) {
	args := m.Called(ctx, tconst, nconst)
	return args.Get(0).(principal.CastMember), args.Error(1)
}

func (m *MockPrincipalService) Create(ctx context.Context, p principal.Principal) (principal.Principal, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(principal.Principal), args.Error(1)
}

func (m *MockPrincipalService) Update(ctx context.Context, tconst, nconst string, ordering int, p principal.Patch) (principal.Principal, error) {
	args := m.Called(ctx, tconst, nconst, ordering, p)
	return args.Get(0).(principal.Principal), args.Error(1)
}

func (m *MockPrincipalService) Delete(ctx context.Context, tconst, nconst string, ordering int) error {
	return m.Called(ctx, tconst, nconst, ordering).Error(0)
}

type MockCrewService struct {
	mock.Mock
}

func (m *MockCrewService) List(ctx context.Context, f crew.Filter, p query.Page) (query.Paged[crew.Crew], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[crew.Crew]), args.Error(1)
}

func (m *MockCrewService) Get(ctx context.Context, tconst string, includeNames bool) (crew.Crew, error) {
	args := m.Called(ctx, tconst, includeNames)
	return args.Get(0).(crew.Crew), args.Error(1)
}

func (m *MockCrewService) Create(ctx context.Context, c crew.Crew) (crew.Crew, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(crew.Crew), args.Error(1)
}

func (m *MockCrewService) Update(ctx context.Context, tconst string, p crew.Patch) (crew.Crew, error) {
	args := m.Called(ctx, tconst, p)
	return args.Get(0).(crew.Crew), args.Error(1)
}

func (m *MockCrewService) Delete(ctx context.Context, tconst string) error {
	return m.Called(ctx, tconst).Error(0)
}

func (m *MockCrewService) AddMembers(ctx context.Context, tconst string, role crew.Role, nconsts []string) (crew.Crew, error) {
	args := m.Called(ctx, tconst, role, nconsts)
	return args.Get(0).(crew.Crew), args.Error(1)
}

func (m *MockCrewService) RemoveMember(ctx context.Context, tconst string, role crew.Role, nconst string) (crew.Crew, error) {
	args := m.Called(ctx, tconst, role, nconst)
	return args.Get(0).(crew.Crew), args.Error(1)
}

type MockAkaService struct {
	mock.Mock
}

func (m *MockAkaService) List(ctx context.Context, f aka.Filter, p query.Page) (query.Paged[aka.Aka], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[aka.Aka]), args.Error(1)
}

func (m *MockAkaService) ListForTitle(ctx context.Context, f aka.Filter, p query.Page) (query.Paged[aka.Aka], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[aka.Aka]), args.Error(1)
}

func (m *MockAkaService) Get(ctx context.Context, titleID string, ordering int) (aka.Aka, error) {
	args := m.Called(ctx, titleID, ordering)
	return args.Get(0).(aka.Aka), args.Error(1)
}

func (m *MockAkaService) Create(ctx context.Context, a aka.Aka) (aka.Aka, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(aka.Aka), args.Error(1)
}

func (m *MockAkaService) Update(ctx context.Context, titleID string, ordering int, p aka.Patch) (aka.Aka, error) {
	args := m.Called(ctx, titleID, ordering, p)
	return args.Get(0).(aka.Aka), args.Error(1)
}

func (m *MockAkaService) Delete(ctx context.Context, titleID string, ordering int) error {
	return m.Called(ctx, titleID, ordering).Error(0)
}

type MockEpisodeService struct {
	mock.Mock
}

func (m *MockEpisodeService) List(ctx context.Context, f episode.Filter, p query.Page) (query.Paged[episode.Episode], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(query.Paged[episode.Episode]), args.Error(1)
}

func (m *MockEpisodeService) Seasons(ctx context.Context, f episode.Filter) ([]episode.Season, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]episode.Season), args.Error(1)
}

func (m *MockEpisodeService) Get(ctx context.Context, tconst string) (episode.Episode, error) {
	args := m.Called(ctx, tconst)
	return args.Get(0).(episode.Episode), args.Error(1)
}

func (m *MockEpisodeService) Create(ctx context.Context, e episode.Episode) (episode.Episode, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(episode.Episode), args.Error(1)
}

func (m *MockEpisodeService) Update(ctx context.Context, tconst string, p episode.Patch) (episode.Episode, error) {
	args := m.Called(ctx, tconst, p)
	return args.Get(0).(episode.Episode), args.Error(1)
}

func (m *MockEpisodeService) Delete(ctx context.Context, tconst string) error {
	return m.Called(ctx, tconst).Error(0)
}

type mockServices struct {
	titles     *MockTitleService
	people     *MockPersonService
	principals *MockPrincipalService
	crews      *MockCrewService
	akas       *MockAkaService
	episodes   *MockEpisodeService
}

func newMockedServer() (*httpserver.Server, *mockServices) {
	m := &mockServices{
		titles:     new(MockTitleService),
		people:     new(MockPersonService),
		principals: new(MockPrincipalService),
		crews:      new(MockCrewService),
		akas:       new(MockAkaService),
		episodes:   new(MockEpisodeService),
	}
	server := httpserver.Default(testConfig())
	server.TitleService = m.titles
	server.PersonService = m.people
	server.PrincipalService = m.principals
	server.CrewService = m.crews
	server.AkaService = m.akas
	server.EpisodeService = m.episodes
	return server, m
}

func defaultPage() query.Page {
	return query.Page{Page: query.DefaultPage, Limit: query.DefaultLimit}
}
