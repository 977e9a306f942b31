package services_test

import (
	"context"
	"errors"
	"fmt"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/models"
	"mediacatalog/internal/services"
	"mediacatalog/internal/services/mocks"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validInput() models.MediaInput {
	return models.MediaInput{
		Name:            "Breaking Bad",
		Description:     "A chemistry teacher turns to crime.",
		Rating:          "9.5",
		Type:            "TV Show",
		Status:          "Ended",
		Genres:          []string{"Drama, Crime"},
		Author:          "alice",
		FirstAirDate:    "2008-01-20",
		NumberOfSeasons: "5",
	}
}

func TestMediaService_CreateMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("Assigns Id And Normalizes", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)

		created, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, 9.5, created.Rating)
		assert.Equal(t, models.TypeTVShow, created.Type)
		assert.Equal(t, models.Genres{"Drama", "Crime"}, created.Genres)
		require.NotNil(t, created.FirstAirDate)
		assert.Equal(t, "2008-01-20", *created.FirstAirDate)
		require.NotNil(t, created.NumberOfSeasons)
		assert.Equal(t, 5, *created.NumberOfSeasons)
		assert.Nil(t, created.ReleaseDate)

		second, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("Missing Required Fields", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)

		input := validInput()
		input.Description = ""
		input.Author = "  "
		_, err := svc.CreateMedia(ctx, input, models.ImageUploads{})
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Equal(t, "Missing required fields: description, author", services.ErrorMessage(err))

		_, total, err := env.Repo.ListMedia(ctx, catalog.Query{})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("Malformed Values", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)

		for name, mutate := range map[string]func(*models.MediaInput){
			"rating":          func(in *models.MediaInput) { in.Rating = "great" },
			"rating infinity": func(in *models.MediaInput) { in.Rating = "Inf" },
			"rating negative": func(in *models.MediaInput) { in.Rating = "-Inf" },
			"rating nan":      func(in *models.MediaInput) { in.Rating = "NaN" },
			"type":            func(in *models.MediaInput) { in.Type = "movies" },
			"seasons":         func(in *models.MediaInput) { in.NumberOfSeasons = "five" },
		} {
			input := validInput()
			mutate(&input)
			_, err := svc.CreateMedia(ctx, input, models.ImageUploads{})
			assert.ErrorIs(t, err, services.ErrValidation, name)
		}

		_, total, err := env.Repo.ListMedia(ctx, catalog.Query{})
		require.NoError(t, err)
		assert.Equal(t, 0, total, "rejected input must not be stored")
	})

	t.Run("Stores Images", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)

		images := models.ImageUploads{
			Avatar:     fileHeader(t, "avatar", "a.png", pngBytes),
			Background: fileHeader(t, "background", "b.jpg", jpegBytes),
		}
		created, err := svc.CreateMedia(ctx, validInput(), images)
		require.NoError(t, err)
		assert.Regexp(t, `^resources/images/avatar-`, created.Avatar)
		assert.Regexp(t, `^resources/images/background-`, created.Background)

		_, err = os.Stat(filepath.Join(env.UploadDir, "images", filepath.Base(created.Avatar)))
		assert.NoError(t, err)
	})

	t.Run("Rejected Image Leaves Nothing Behind", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)

		images := models.ImageUploads{
			Avatar:     fileHeader(t, "avatar", "a.png", pngBytes),
			Background: fileHeader(t, "background", "b.gif", []byte("GIF89a")),
		}
		_, err := svc.CreateMedia(ctx, validInput(), images)
		assert.ErrorIs(t, err, services.ErrUnsupported)

		entries, _ := os.ReadDir(filepath.Join(env.UploadDir, "images"))
		assert.Empty(t, entries)
	})

	t.Run("Store Failure Discards Images", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		storage := new(mocks.MockStorageService)
		svc := services.NewMediaService(repo, storage)

		avatar := fileHeader(t, "avatar", "a.png", pngBytes)
		storage.On("SaveImage", "avatar", avatar).Return("resources/images/avatar-x.png", nil)
		storage.On("DeleteImage", "resources/images/avatar-x.png").Return(nil)
		repo.On("CreateMedia", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		_, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{Avatar: avatar})
		assert.Error(t, err)
		storage.AssertExpectations(t)
		repo.AssertExpectations(t)
	})
}

func TestMediaService_UpdateMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("Partial Merge", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)
		created, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{})
		require.NoError(t, err)

		updated, err := svc.UpdateMedia(ctx, created.ID, models.MediaInput{
			Rating:         "8.9",
			Status:         "Returning",
			EpisodeRunTime: "47",
			Name:           "",
			Genres:         []string{""},
		}, models.ImageUploads{})
		require.NoError(t, err)

		assert.Equal(t, 8.9, updated.Rating)
		assert.Equal(t, "Returning", updated.Status)
		require.NotNil(t, updated.EpisodeRunTime)
		assert.Equal(t, 47, *updated.EpisodeRunTime)
		assert.Equal(t, "Breaking Bad", updated.Name)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, models.Genres{"Drama", "Crime"}, updated.Genres)
		assert.Equal(t, created.NumberOfSeasons, updated.NumberOfSeasons)

		stored, err := env.Repo.GetMedia(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, stored)
	})

	t.Run("Zero Values Do Not Overwrite", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)
		created, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{})
		require.NoError(t, err)

		updated, err := svc.UpdateMedia(ctx, created.ID, models.MediaInput{Rating: "0", NumberOfSeasons: "0"}, models.ImageUploads{})
		require.NoError(t, err)
		assert.Equal(t, 9.5, updated.Rating)
		assert.Equal(t, 5, *updated.NumberOfSeasons)
	})

	t.Run("Non Finite Rating", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)
		created, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{})
		require.NoError(t, err)

		_, err = svc.UpdateMedia(ctx, created.ID, models.MediaInput{Rating: "NaN"}, models.ImageUploads{})
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Equal(t, "rating must be a number", services.ErrorMessage(err))

		stored, err := env.Repo.GetMedia(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 9.5, stored.Rating)
	})

	t.Run("Unknown Id", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)
		_, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{})
		require.NoError(t, err)
		before, err := env.Repo.Export(ctx)
		require.NoError(t, err)

		_, err = svc.UpdateMedia(ctx, 42, models.MediaInput{Name: "Ghost"}, models.ImageUploads{
			Avatar: fileHeader(t, "avatar", "a.png", pngBytes),
		})
		assert.ErrorIs(t, err, services.ErrNotFound)

		after, err := env.Repo.Export(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)

		entries, _ := os.ReadDir(filepath.Join(env.UploadDir, "images"))
		assert.Empty(t, entries, "uploaded image must be discarded")
	})

	t.Run("Invalid Type", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)
		created, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{})
		require.NoError(t, err)

		_, err = svc.UpdateMedia(ctx, created.ID, models.MediaInput{Type: "Podcast"}, models.ImageUploads{})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("Replaced Image Is Removed", func(t *testing.T) {
		env := newTestEnv(t)
		svc := services.NewMediaService(env.Repo, env.Storage)
		created, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{
			Avatar: fileHeader(t, "avatar", "old.png", pngBytes),
		})
		require.NoError(t, err)
		oldPath := filepath.Join(env.UploadDir, "images", filepath.Base(created.Avatar))

		updated, err := svc.UpdateMedia(ctx, created.ID, models.MediaInput{}, models.ImageUploads{
			Avatar: fileHeader(t, "avatar", "new.png", pngBytes),
		})
		require.NoError(t, err)
		assert.NotEqual(t, created.Avatar, updated.Avatar)

		_, err = os.Stat(oldPath)
		assert.True(t, os.IsNotExist(err), "old avatar should be removed")
		_, err = os.Stat(filepath.Join(env.UploadDir, "images", filepath.Base(updated.Avatar)))
		assert.NoError(t, err)
	})
}

func TestMediaService_DeleteMedia(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := services.NewMediaService(env.Repo, env.Storage)

	created, err := svc.CreateMedia(ctx, validInput(), models.ImageUploads{
		Background: fileHeader(t, "background", "bg.png", pngBytes),
	})
	require.NoError(t, err)
	_, err = svc.CreateMedia(ctx, validInput(), models.ImageUploads{})
	require.NoError(t, err)

	removed, err := svc.DeleteMedia(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = os.Stat(filepath.Join(env.UploadDir, "images", filepath.Base(created.Background)))
	assert.True(t, os.IsNotExist(err))

	page, err := svc.ListMedia(ctx, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)

	_, err = svc.DeleteMedia(ctx, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	page, err = svc.ListMedia(ctx, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
}

func TestMediaService_Queries(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := services.NewMediaService(env.Repo, env.Storage)

	for i := 0; i < 10; i++ {
		input := validInput()
		input.Name = fmt.Sprintf("Show %d", i)
		if i%2 == 0 {
			input.Type = "Movie"
			input.Genres = []string{"Action"}
			input.Author = "bob"
		}
		_, err := svc.CreateMedia(ctx, input, models.ImageUploads{})
		require.NoError(t, err)
	}

	t.Run("ListMedia", func(t *testing.T) {
		page, err := svc.ListMedia(ctx, 2, 8)
		require.NoError(t, err)
		assert.Equal(t, 10, page.TotalItems)
		assert.Len(t, page.Data, 2)
		assert.Equal(t, int64(9), page.Data[0].ID)
	})

	t.Run("GetMedia", func(t *testing.T) {
		item, err := svc.GetMedia(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Show 2", item.Name)

		_, err = svc.GetMedia(ctx, 99)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("SearchMedia", func(t *testing.T) {
		page, err := svc.SearchMedia(ctx, "show 1")
		require.NoError(t, err)
		assert.Equal(t, 1, page.TotalItems)

		page, err = svc.SearchMedia(ctx, "")
		require.NoError(t, err)
		assert.Len(t, page.Data, 10, "search is not paginated")
	})

	t.Run("ListByType", func(t *testing.T) {
		page, err := svc.ListByType(ctx, "movies", 1, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalItems)
		assert.Len(t, page.Data, 3)
		for _, it := range page.Data {
			assert.Equal(t, models.TypeMovie, it.Type)
		}

		_, err = svc.ListByType(ctx, "podcasts", 1, 8)
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("ListByGenre", func(t *testing.T) {
		page, err := svc.ListByGenre(ctx, "ACTION", 1, 8)
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalItems)

		_, err = svc.ListByGenre(ctx, " ", 1, 8)
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("ListByAuthor", func(t *testing.T) {
		page, err := svc.ListByAuthor(ctx, "alice", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalItems)
		assert.Len(t, page.Data, 2)

		_, err = svc.ListByAuthor(ctx, "", 1, 8)
		assert.ErrorIs(t, err, services.ErrValidation)

		_, err = svc.ListByAuthor(ctx, "nobody", 1, 8)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}
