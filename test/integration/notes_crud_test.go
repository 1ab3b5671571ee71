package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardPublisher struct{}

func (discardPublisher) Publish(_ context.Context, _ string, _ []byte) error { return nil }

type discardLogger struct{}

func (discardLogger) Debug(string, string, map[string]interface{}) {}
func (discardLogger) Info(string, string, map[string]interface{})  {}
func (discardLogger) Warn(string, string, map[string]interface{})  {}
func (discardLogger) Error(string, string, map[string]interface{}) {}
func (discardLogger) Sync() error                                  { return nil }

func TestNotesCrudAgainstPostgres(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	require.NoError(t, gormDB.AutoMigrate(&model.Item{}))

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	svc := service.NewNoteService(uowFactory, discardPublisher{}, discardLogger{})

	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	folder, err := svc.CreateNote(ctx, owner, &dto.CreateNoteRequest{
		Title: "Integration Folder",
		Type:  entity.ItemTypeFolder,
	})
	require.NoError(t, err)

	for _, title := range []string{"Note A", "Note B"} {
		_, err := svc.CreateNote(ctx, owner, &dto.CreateNoteRequest{
			Title:    title,
			Type:     entity.ItemTypeNote,
			ParentId: &folder.Id,
		})
		require.NoError(t, err)
	}

	t.Run("Folder view attaches its notes", func(t *testing.T) {
		view, err := svc.GetFolder(ctx, owner, folder.Id)
		require.NoError(t, err)
		assert.Len(t, view.Notes, 2)
	})

	t.Run("Other owners cannot see the folder", func(t *testing.T) {
		_, err := svc.GetNote(ctx, stranger, folder.Id)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("Destroying the folder removes its notes too", func(t *testing.T) {
		require.NoError(t, svc.DestroyNote(ctx, owner, folder.Id))

		_, err := svc.GetNote(ctx, owner, folder.Id)
		assert.ErrorIs(t, err, entity.ErrNotFound)

		roots, err := svc.ListNotes(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, roots)
	})
}
