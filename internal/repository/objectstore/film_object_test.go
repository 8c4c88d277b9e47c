package objectstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"filmshelf/internal/model"
	"filmshelf/internal/repository"
	"filmshelf/internal/storage"
	storeMocks "filmshelf/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "films/00000000000000000042.json", objectKey(42))

	id, ok := idFromKey("films/00000000000000000042.json")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, key := range []string{"films/readme.txt", "other/00000000000000000001.json", "films/abc.json", "films/0.json"} {
		_, ok := idFromKey(key)
		assert.False(t, ok, key)
	}
}

func TestFilmObject_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("continues after existing objects", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		repo := NewFilmObject(mStore)

		mStore.On("List", ctx, "films/").Return([]storage.ObjectInfo{
			{Key: objectKey(1)},
			{Key: objectKey(5)},
			{Key: "films/notes.txt"},
		}, nil).Once()
		mStore.On("Put", ctx, objectKey(6), mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
			return o.ContentType == "application/json" && o.Size > 0
		})).Return(storage.ObjectInfo{Key: objectKey(6)}, nil).Once()
		mStore.On("Put", ctx, objectKey(7), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: objectKey(7)}, nil).Once()

		first, err := repo.Insert(ctx, &model.Film{Title: "Inception"})
		require.NoError(t, err)
		second, err := repo.Insert(ctx, &model.Film{Title: "Heat"})
		require.NoError(t, err)

		assert.Equal(t, int64(6), first.ID)
		assert.Equal(t, int64(7), second.ID)
		mStore.AssertExpectations(t)
	})

	t.Run("failed put keeps id", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		repo := NewFilmObject(mStore)

		mStore.On("List", ctx, "films/").Return([]storage.ObjectInfo{}, nil).Once()
		mStore.On("Put", ctx, objectKey(1), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket unavailable")).Once()
		mStore.On("Put", ctx, objectKey(1), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: objectKey(1)}, nil).Once()

		_, err := repo.Insert(ctx, &model.Film{Title: "Heat"})
		var serr *repository.StorageError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "insert", serr.Op)

		stored, err := repo.Insert(ctx, &model.Film{Title: "Heat"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.ID)
		mStore.AssertExpectations(t)
	})

	t.Run("list failure", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		repo := NewFilmObject(mStore)

		mStore.On("List", ctx, "films/").Return(nil, errors.New("timeout")).Once()

		_, err := repo.Insert(ctx, &model.Film{Title: "Heat"})
		assert.ErrorContains(t, err, "storage insert: timeout")
	})
}

func TestFilmObject_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		repo := NewFilmObject(mStore)

		mStore.On("List", ctx, "films/").Return([]storage.ObjectInfo{
			{Key: objectKey(1)},
			{Key: "films/notes.txt"},
			{Key: objectKey(2)},
		}, nil).Once()
		mStore.On("Get", ctx, objectKey(1)).
			Return(io.NopCloser(strings.NewReader(`{"id":1,"title":"Inception","year":2010}`)), storage.ObjectInfo{}, nil).Once()
		mStore.On("Get", ctx, objectKey(2)).
			Return(io.NopCloser(strings.NewReader(`{"id":2,"title":"Heat"}`)), storage.ObjectInfo{}, nil).Once()

		films, err := repo.ListAll(ctx)

		require.NoError(t, err)
		require.Len(t, films, 2)
		assert.Equal(t, "Inception", films[0].Title)
		require.NotNil(t, films[0].Year)
		assert.Equal(t, 2010, *films[0].Year)
		assert.Equal(t, int64(2), films[1].ID)
		mStore.AssertExpectations(t)
	})

	t.Run("empty bucket", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		repo := NewFilmObject(mStore)

		mStore.On("List", ctx, "films/").Return([]storage.ObjectInfo{}, nil).Once()

		films, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, films)
		assert.Empty(t, films)
	})

	t.Run("corrupt object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		repo := NewFilmObject(mStore)

		mStore.On("List", ctx, "films/").Return([]storage.ObjectInfo{{Key: objectKey(1)}}, nil).Once()
		mStore.On("Get", ctx, objectKey(1)).
			Return(io.NopCloser(strings.NewReader(`{not json`)), storage.ObjectInfo{}, nil).Once()

		_, err := repo.ListAll(ctx)

		var serr *repository.StorageError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "list", serr.Op)
	})
}

func TestFilmObject_PingContext(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	repo := NewFilmObject(mStore)
	ctx := context.Background()

	mStore.On("Ping", ctx).Return(nil).Once()

	assert.NoError(t, repo.PingContext(ctx))
	mStore.AssertExpectations(t)
}
