package noteusecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"worklog/internal/server/app"
	"worklog/internal/server/domain/entities"
)

func TestUpdateNote(t *testing.T) {
	ownerID := int64(7)
	noteID := int64(11)
	noteDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	existing := &entities.Note{ID: noteID, UserID: ownerID, Date: noteDate, Content: "old"}
	updated := &entities.Note{ID: noteID, UserID: ownerID, Date: noteDate, Content: "new"}

	t.Run("success - owner updates the note", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		mockRepo.On("UpdateContent", mock.Anything, noteID, "new").Return(updated, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, newFakeCache())

		got, err := useCase.UpdateNote(context.Background(), ownerID, noteID, "new")

		require.NoError(t, err)
		assert.Equal(t, "new", got.Content)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - note does not exist", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("GetByID", mock.Anything, noteID).Return(nil, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, newFakeCache())

		got, err := useCase.UpdateNote(context.Background(), ownerID, noteID, "new")

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("error - caller is not the owner", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, newFakeCache())

		got, err := useCase.UpdateNote(context.Background(), int64(99), noteID, "new")

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrForbidden)
		assert.Nil(t, got)
		mockRepo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - repository failure", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("GetByID", mock.Anything, noteID).Return(nil, errDatabaseConnection).Once()

		useCase := app.NewNoteUseCase(mockRepo, newFakeCache())

		_, err := useCase.UpdateNote(context.Background(), ownerID, noteID, "new")

		require.Error(t, err)
		assert.ErrorIs(t, err, errDatabaseConnection)
	})
}

func TestDeleteNote(t *testing.T) {
	ownerID := int64(7)
	noteID := int64(11)
	noteDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	existing := &entities.Note{ID: noteID, UserID: ownerID, Date: noteDate, Content: "old"}

	t.Run("success - owner deletes the note and caches are evicted", func(t *testing.T) {
		cache := newFakeCache()
		require.NoError(t, cache.Set(context.Background(), "notes:7:all", "[]", 0))
		require.NoError(t, cache.Set(context.Background(), "notes:7:2024-03", "[]", 0))

		mockRepo := new(mockNoteRepository)
		mockRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		mockRepo.On("Delete", mock.Anything, noteID).Return(nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, cache)

		err := useCase.DeleteNote(context.Background(), ownerID, noteID)

		require.NoError(t, err)
		assert.False(t, cache.has("notes:7:all"))
		assert.False(t, cache.has("notes:7:2024-03"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - note does not exist", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("GetByID", mock.Anything, noteID).Return(nil, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, newFakeCache())

		err := useCase.DeleteNote(context.Background(), ownerID, noteID)

		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("error - caller is not the owner", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, newFakeCache())

		err := useCase.DeleteNote(context.Background(), int64(99), noteID)

		assert.ErrorIs(t, err, app.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("error - note vanished between lookup and delete", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		mockRepo.On("Delete", mock.Anything, noteID).Return(entities.ErrNoteNotFound).Once()

		useCase := app.NewNoteUseCase(mockRepo, newFakeCache())

		err := useCase.DeleteNote(context.Background(), ownerID, noteID)

		assert.ErrorIs(t, err, app.ErrNotFound)
	})
}
