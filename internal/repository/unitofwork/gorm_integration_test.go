package unitofwork_test

import (
	"context"
	"os"
	"testing"
	"time"

	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/model"
	"mycloud-drive/internal/repository/specification"
	"mycloud-drive/internal/repository/unitofwork"
	"mycloud-drive/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when DB_CONNECTION_STRING is set.
func TestRepositoriesAgainstPostgres(t *testing.T) {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.File{}, &model.AccessLog{}))

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	user := &entity.User{
		Id:           uuid.New(),
		Username:     "it-" + uuid.NewString(),
		PasswordHash: "x",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	t.Cleanup(func() { db.Delete(&model.User{}, "id = ?", user.Id) })

	t.Run("user lookup by username", func(t *testing.T) {
		found, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: user.Username})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.Id, found.Id)

		missing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: "nobody-" + uuid.NewString()})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("file upsert keeps one row per owner and filename", func(t *testing.T) {
		files := uow.FileRepository()
		first := &entity.File{Id: uuid.New(), OwnerId: user.Id, Filename: "a.txt", SizeBytes: 1, CreatedAt: time.Now()}
		require.NoError(t, files.Upsert(ctx, first))
		second := &entity.File{Id: uuid.New(), OwnerId: user.Id, Filename: "b.txt", SizeBytes: 2, CreatedAt: time.Now().Add(time.Second)}
		require.NoError(t, files.Upsert(ctx, second))

		again := &entity.File{Id: uuid.New(), OwnerId: user.Id, Filename: "a.txt", SizeBytes: 10, CreatedAt: time.Now()}
		require.NoError(t, files.Upsert(ctx, again))
		assert.Equal(t, first.Id, again.Id)

		all, err := files.FindAll(ctx, specification.FileOwnedBy{OwnerID: user.Id})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "a.txt", all[0].Filename)
		assert.Equal(t, int64(10), all[0].SizeBytes)

		require.NoError(t, files.Delete(ctx, second.Id))
		gone, err := files.FindOne(ctx, specification.FileOwnedBy{OwnerID: user.Id}, specification.ByFilename{Filename: "b.txt"})
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("access logs newest first", func(t *testing.T) {
		logs := uow.AccessLogRepository()
		base := time.Now().Add(-time.Hour)
		for i, action := range []entity.AccessAction{entity.AccessActionUpload, entity.AccessActionDownload, entity.AccessActionDelete} {
			require.NoError(t, logs.Create(ctx, &entity.AccessLog{
				Id:         uuid.New(),
				UserId:     user.Id,
				Filename:   "a.txt",
				Action:     action,
				OccurredAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}

		recent, err := logs.FindAll(ctx, specification.UserOwnedBy{UserID: user.Id}, specification.Pagination{Limit: 2})
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, entity.AccessActionDelete, recent[0].Action)
		assert.Equal(t, entity.AccessActionDownload, recent[1].Action)
	})
}
