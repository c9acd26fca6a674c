package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/AlexRizo/flowee-bodesa-backend/config"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	admin, err := repo.CreateUser(ctx, entities.User{
		ID: "adm", Name: "Admin", Email: "admin@bodesa.mx", Avatar: "/images/avatar.webp",
		Role: entities.RoleAdmin, Active: true,
	})
	require.NoError(t, err)
	require.False(t, admin.CreatedAt.IsZero())

	pub, err := repo.CreateUser(ctx, entities.User{
		ID: "pub", Name: "Paula", Email: "paula@bodesa.mx", Avatar: "/images/avatar.webp",
		Role: entities.RolePublisher, Active: true,
	})
	require.NoError(t, err)

	des, err := repo.CreateUser(ctx, entities.User{
		ID: "des", Name: "Diego", Email: "diego@bodesa.mx", Avatar: "/images/avatar.webp",
		Role: entities.RoleDesigner, Active: true,
	})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, entities.User{
		ID: "des2", Name: "Dana", Email: "dana@bodesa.mx", Avatar: "/images/avatar.webp",
		Role: entities.RoleDesigner, Active: true,
	})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, entities.User{
		ID: "dup", Name: "Dup", Email: "paula@bodesa.mx", Avatar: "/images/avatar.webp",
		Role: entities.RolePublisher, Active: true,
	})
	require.ErrorIs(t, err, entities.ErrEmailExists)

	board, err := repo.CreateBoard(ctx, entities.Board{
		ID: "b1", Name: "Promos", Slug: "promos", Color: "#ff0000", Initials: "PR",
	})
	require.NoError(t, err)
	require.True(t, board.Active)

	_, err = repo.CreateBoard(ctx, entities.Board{ID: "b1x", Name: "Other", Slug: "promos"})
	require.ErrorIs(t, err, entities.ErrBoardExists)

	_, err = repo.GetBoardBySlug(ctx, "missing")
	require.ErrorIs(t, err, entities.ErrBoardNotFound)

	bySlug, err := repo.GetBoardBySlug(ctx, "promos")
	require.NoError(t, err)
	require.Equal(t, board.ID, bySlug.ID)

	added, err := repo.AddBoardMembers(ctx, board.ID, []string{pub.ID, des.ID, "ghost"})
	require.NoError(t, err)
	require.Len(t, added, 2)

	members, pages, err := repo.ListBoardMembers(ctx, board.ID, 1)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, 1, pages)

	addable, err := repo.ListAddableUsers(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, addable, 1)
	require.Equal(t, "des2", addable[0].ID)

	boards, err := repo.UserBoards(ctx, pub.ID)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, "promos", boards[0].Slug)

	finish := time.Now().Add(72 * time.Hour).UTC()
	r1, err := repo.InsertRequest(ctx, entities.Request{
		ID: "r1", Title: "Spring banner", Description: "Hero banner",
		Type: entities.TypeDigital, Priority: entities.PriorityHigh,
		Status: entities.StatusAwaiting, Size: "1920x600", Legals: "none",
		Author: entities.UserRef{ID: pub.ID},
		Board:  entities.BoardRef{ID: board.ID},
		Files:  []entities.FileRef{{ID: "f1", URL: "https://blobs/f1"}},
		ReferenceFiles: []entities.FileRef{{ID: "f2", URL: "https://blobs/f2"}},
		FinishDate:     finish,
	})
	require.NoError(t, err)
	require.Equal(t, "Paula", r1.Author.Name)
	require.Equal(t, "promos", r1.Board.Slug)
	require.Equal(t, "#ff0000", r1.Board.Color)
	require.Len(t, r1.Files, 1)
	require.Len(t, r1.ReferenceFiles, 1)
	require.Nil(t, r1.AssignedTo)

	r2, err := repo.InsertRequest(ctx, entities.Request{
		ID: "r2", Title: "Catalog page", Description: "Retail catalog",
		Type: entities.TypePrinted, Priority: entities.PriorityNormal,
		Status: entities.StatusAwaiting, Size: "A4", Legals: "none",
		Author:     entities.UserRef{ID: pub.ID},
		Board:      entities.BoardRef{ID: board.ID},
		AssignedTo: &entities.UserRef{ID: des.ID},
		FinishDate: finish,
	})
	require.NoError(t, err)
	require.NotNil(t, r2.AssignedTo)
	require.Equal(t, "Diego", r2.AssignedTo.Name)

	r3, err := repo.InsertRequest(ctx, entities.Request{
		ID: "r3", Title: "Own banner", Description: "Self assigned",
		Type: entities.TypeSpecial, Priority: entities.PriorityLow,
		Status: entities.StatusAwaiting, Size: "800x600", Legals: "none",
		Author:         entities.UserRef{ID: des.ID},
		Board:          entities.BoardRef{ID: board.ID},
		AssignedTo:     &entities.UserRef{ID: des.ID},
		IsAutoAssigned: true,
		FinishDate:     finish,
	})
	require.NoError(t, err)
	require.True(t, r3.IsAutoAssigned)

	_, err = repo.GetRequest(ctx, "missing")
	require.ErrorIs(t, err, entities.ErrRequestNotFound)

	all, err := repo.ListBoardRequests(ctx, board.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	desID := des.ID
	scoped, err := repo.ListBoardRequests(ctx, board.ID, &desID)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	for _, r := range scoped {
		ownOrAssigned := r.Author.ID == des.ID || (r.AssignedTo != nil && r.AssignedTo.ID == des.ID)
		require.True(t, ownOrAssigned, "request %s leaked into scope", r.ID)
	}

	pubID := pub.ID
	scoped, err = repo.ListBoardRequests(ctx, board.ID, &pubID)
	require.NoError(t, err)
	require.Len(t, scoped, 2)

	auto, err := repo.ListAutoAssigned(ctx, des.ID)
	require.NoError(t, err)
	require.Len(t, auto, 1)
	require.Equal(t, "r3", auto[0].ID)

	updated, err := repo.UpdateRequestStatus(ctx, "r2", entities.StatusPending)
	require.NoError(t, err)
	require.Equal(t, entities.StatusPending, updated.Status)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	_, err = repo.UpdateRequestStatus(ctx, "missing", entities.StatusDone)
	require.ErrorIs(t, err, entities.ErrRequestNotFound)

	loads, err := repo.DesignerLoad(ctx, nil)
	require.NoError(t, err)
	byID := map[string]entities.DesignerLoad{}
	for _, l := range loads {
		byID[l.Designer.ID] = l
	}
	require.Len(t, loads, 2)
	require.Equal(t, int64(1), byID[des.ID].Pending)
	require.Equal(t, int64(1), byID[des.ID].Awaiting)
	require.Equal(t, int64(0), byID[des.ID].InProgress)
	require.Equal(t, int64(2), byID[des.ID].Total)
	require.Equal(t, int64(0), byID["des2"].Total)

	_, err = repo.UpdateRequestStatus(ctx, "r3", entities.StatusDone)
	require.NoError(t, err)

	boardID := board.ID
	loads, err = repo.DesignerLoad(ctx, &boardID)
	require.NoError(t, err)
	byID = map[string]entities.DesignerLoad{}
	for _, l := range loads {
		byID[l.Designer.ID] = l
	}
	require.Equal(t, int64(1), byID[des.ID].Total)

	require.NoError(t, repo.SoftDeleteUser(ctx, "des2"))
	require.ErrorIs(t, repo.SoftDeleteUser(ctx, "des2"), entities.ErrUserNotFound)

	loads, err = repo.DesignerLoad(ctx, nil)
	require.NoError(t, err)
	require.Len(t, loads, 1)

	deleted, err := repo.GetUser(ctx, "des2")
	require.NoError(t, err)
	require.True(t, deleted.Deleted)

	users, pages, err := repo.ListUsers(ctx, entities.Roles, 1)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, 1, pages)

	require.NoError(t, repo.RemoveBoardMember(ctx, board.ID, des.ID))
	require.ErrorIs(t, repo.RemoveBoardMember(ctx, board.ID, des.ID), entities.ErrUserNotFound)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=flowee_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "flowee_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=flowee_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
