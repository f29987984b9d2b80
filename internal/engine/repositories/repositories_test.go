package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/config"
	"github.com/anhbaysgalan1/balatro/internal/database"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/events"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite runs against a real Postgres (TEST_DATABASE_URL) and,
// when TEST_REDIS_URL is set, a real Redis.
type RepositoryTestSuite struct {
	suite.Suite
	db         *database.DB
	redis      *redis.Client
	gameStates *GameStateRepository
	highscores *HighscoreRepository
	players    *PlayerRepository
	eventStore *PostgreSQLEventStore
	cache      *RedisCache
}

func TestRepositorySuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupSuite() {
	cfg := config.Load()
	cfg.DatabaseURL = os.Getenv("TEST_DATABASE_URL")
	cfg.Environment = "test"

	db, err := database.NewConnection(cfg)
	s.Require().NoError(err)
	s.db = db
	s.Require().NoError(db.AutoMigrate())

	s.gameStates = NewGameStateRepository(db.DB)
	s.highscores = NewHighscoreRepository(db.DB)
	s.players = NewPlayerRepository(db.DB)
	s.eventStore = NewPostgreSQLEventStore(db.DB)
	s.Require().NoError(s.eventStore.Migrate())

	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		opts, err := redis.ParseURL(url)
		s.Require().NoError(err)
		s.redis = redis.NewClient(opts)
		s.cache = NewRedisCache(s.redis)
	}
}

func (s *RepositoryTestSuite) SetupTest() {
	s.db.Exec("TRUNCATE TABLE player_states, highscores, players, run_events")
	if s.redis != nil {
		s.redis.FlushDB(context.Background())
	}
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.redis != nil {
		s.redis.Close()
	}
	s.db.Close()
}

func (s *RepositoryTestSuite) TestGameState_UpsertReplacesExisting() {
	ctx := context.Background()

	first := &models.PlayerState{UserID: "user-1", Money: 50, Lives: 3, CurrentBlind: 1, Document: models.JSONB(`{"money":50}`)}
	s.Require().NoError(s.gameStates.Upsert(ctx, first))

	second := &models.PlayerState{UserID: "user-1", Money: 75, Lives: 2, CurrentBlind: 3, Document: models.JSONB(`{"money":75}`)}
	s.Require().NoError(s.gameStates.Upsert(ctx, second))

	stored, err := s.gameStates.FindByUserID(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(75, stored.Money)
	s.Equal(3, stored.CurrentBlind)
	s.JSONEq(`{"money":75}`, string(stored.Document))

	var count int64
	s.db.Model(&models.PlayerState{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *RepositoryTestSuite) TestGameState_FindAndDeleteMissing() {
	ctx := context.Background()

	stored, err := s.gameStates.FindByUserID(ctx, "nobody")
	s.NoError(err)
	s.Nil(stored)

	deleted, err := s.gameStates.DeleteByUserID(ctx, "nobody")
	s.NoError(err)
	s.False(deleted)
}

func (s *RepositoryTestSuite) TestHighscores_ListBestAndRank() {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	scores := []*models.Highscore{
		{UserID: "a", PlayerName: "A", Score: 900, FinalBlind: 6, DateAchieved: base},
		{UserID: "b", PlayerName: "B", Score: 1200, FinalBlind: 8, DateAchieved: base.Add(time.Hour)},
		{UserID: "a", PlayerName: "A", Score: 1500, FinalBlind: 9, DateAchieved: base.Add(2 * time.Hour)},
		{UserID: "c", PlayerName: "C", Score: 1200, FinalBlind: 7, DateAchieved: base.Add(3 * time.Hour)},
	}
	for _, h := range scores {
		s.Require().NoError(s.highscores.Create(ctx, h))
	}

	page, err := s.highscores.List(ctx, 2, 0, "")
	s.Require().NoError(err)
	s.Equal(int64(4), page.TotalCount)
	s.Require().Len(page.Entries, 2)
	s.Equal(int64(1500), page.Entries[0].Score)
	s.Equal("c", page.Entries[1].UserID)
	s.True(page.HasMore())

	page, err = s.highscores.List(ctx, 10, 0, "a")
	s.Require().NoError(err)
	s.Equal(int64(2), page.TotalCount)
	s.False(page.HasMore())

	best, err := s.highscores.BestForUser(ctx, "a")
	s.Require().NoError(err)
	s.Equal(int64(1500), best.Score)

	rank, err := s.highscores.Rank(ctx, scores[3])
	s.Require().NoError(err)
	s.Equal(int64(2), rank)

	rank, err = s.highscores.Rank(ctx, scores[0])
	s.Require().NoError(err)
	s.Equal(int64(4), rank)

	missing, err := s.highscores.BestForUser(ctx, "nobody")
	s.NoError(err)
	s.Nil(missing)
}

func (s *RepositoryTestSuite) TestPlayers_RecordRunKeepsBest() {
	ctx := context.Background()

	player := &models.Player{DisplayName: "guest"}
	s.Require().NoError(s.players.Create(ctx, player))
	s.Require().NoError(s.players.RecordRun(ctx, player.ID, 800))
	s.Require().NoError(s.players.RecordRun(ctx, player.ID, 300))

	stored, err := s.players.FindByID(ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(2, stored.GamesPlayed)
	s.Equal(int64(800), stored.BestScore)

	none, err := s.players.FindByID(ctx, uuid.New())
	s.NoError(err)
	s.Nil(none)
}

func (s *RepositoryTestSuite) TestEventStore_DetectsConcurrentWrites() {
	ctx := context.Background()
	runID := uuid.New()

	first := []events.DomainEvent{
		events.NewRunStarted(runID, "user-1", "seed", 1),
		events.NewCardsDiscarded(runID, "user-1", []string{"x"}, 2),
	}
	s.Require().NoError(s.eventStore.SaveEvents(ctx, runID, first, 0))

	stale := []events.DomainEvent{events.NewCardsDiscarded(runID, "user-1", []string{"y"}, 2)}
	s.ErrorIs(s.eventStore.SaveEvents(ctx, runID, stale, 1), ErrVersionConflict)

	stored, err := s.eventStore.GetEvents(ctx, runID)
	s.Require().NoError(err)
	s.Len(stored, 2)

	later, err := s.eventStore.GetEventsFromVersion(ctx, runID, 1)
	s.Require().NoError(err)
	s.Len(later, 1)
}

func (s *RepositoryTestSuite) TestRedisCache_GameStateAndPages() {
	if s.cache == nil {
		s.T().Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	miss, err := s.cache.GetGameState(ctx, "user-1")
	s.NoError(err)
	s.Nil(miss)

	s.Require().NoError(s.cache.SetGameState(ctx, "user-1", []byte(`{"money":50}`)))
	hit, err := s.cache.GetGameState(ctx, "user-1")
	s.Require().NoError(err)
	s.JSONEq(`{"money":50}`, string(hit))

	s.Require().NoError(s.cache.InvalidateGameState(ctx, "user-1"))
	miss, err = s.cache.GetGameState(ctx, "user-1")
	s.NoError(err)
	s.Nil(miss)

	page := &models.HighscorePage{Entries: []models.Highscore{{UserID: "a", Score: 10}}, TotalCount: 1, Limit: 10}
	s.Require().NoError(s.cache.SetHighscorePage(ctx, 10, 0, "", page))
	cached, err := s.cache.GetHighscorePage(ctx, 10, 0, "")
	s.Require().NoError(err)
	s.Require().NotNil(cached)
	s.Equal(int64(1), cached.TotalCount)

	s.Require().NoError(s.cache.InvalidateHighscores(ctx))
	cached, err = s.cache.GetHighscorePage(ctx, 10, 0, "")
	s.NoError(err)
	s.Nil(cached)
}
