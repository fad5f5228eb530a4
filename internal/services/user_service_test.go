package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

func TestUpdateProfilePartial(t *testing.T) {
	e := newTestEnv(t)
	svc := NewUserService(e.userRepo, e.images, e.cache)

	headline := "Backend engineer"
	github := "https://github.com/alice"
	user, err := svc.UpdateProfile(e.ctx(), e.db, e.owner.ID, &dto.UpdateProfileRequest{
		Headline:  &headline,
		GithubURL: &github,
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", user.Headline)
	assert.Equal(t, "https://github.com/alice", user.GithubURL)
	assert.Equal(t, "alice", user.Username, "untouched fields survive")
}

func TestUploadAvatarReplacesOld(t *testing.T) {
	e := newTestEnv(t)
	svc := NewUserService(e.userRepo, e.images, e.cache)

	first, err := svc.UploadAvatar(e.ctx(), e.db, e.owner.ID, pngFileHeader(t, "a.png", 500, 500))
	require.NoError(t, err)
	firstPath, err := svc.AvatarPath(e.db, "alice", first.ProfileImage)
	require.NoError(t, err)

	second, err := svc.UploadAvatar(e.ctx(), e.db, e.owner.ID, pngFileHeader(t, "b.png", 500, 500))
	require.NoError(t, err)
	assert.NotEqual(t, first.ProfileImage, second.ProfileImage)

	// Old file is gone, new one resolves.
	_, statErr := os.Stat(firstPath)
	assert.True(t, os.IsNotExist(statErr))
	_, err = svc.AvatarPath(e.db, "alice", second.ProfileImage)
	assert.NoError(t, err)
}

func TestGetByUsernameNotFound(t *testing.T) {
	e := newTestEnv(t)
	svc := NewUserService(e.userRepo, e.images, e.cache)

	_, err := svc.GetByUsername(e.ctx(), e.db, "nobody")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
