package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/testutil"
)

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	domain := NewUserDomain(
		repository.NewUserRepository(),
		repository.NewEventRepository(),
		&testutil.MockSearchCaller{},
	)

	resp, err := domain.GetMe(testutil.MockContextWithUserID(ctx, user.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.ID)
	require.Equal(t, user.WalletAddress.String, resp.WalletAddress)

	_, err = domain.GetMe(ctx, &model.GetMeRequest{})
	require.Error(t, err)
	require.Equal(t, "You need to authenticate before", err.Error())
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	other, err := testutil.SampleUser(ctx, &entity.User{Name: "taken-name"})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository()
	domain := NewUserDomain(userRepo, repository.NewEventRepository(), &testutil.MockSearchCaller{})
	userCtx := testutil.MockContextWithUserID(ctx, user.ID)

	// Renaming to another user's name is rejected.
	_, err = domain.Update(userCtx, &model.UpdateUserRequest{Name: other.Name})
	require.Error(t, err)
	require.Equal(t, "This username is already taken", err.Error())

	_, err = domain.Update(userCtx, &model.UpdateUserRequest{
		Name:        "fresh-name",
		Bio:         "event organizer",
		Interests:   []string{"music", "tech"},
		SocialLinks: map[string]string{"twitter": "https://twitter.com/fresh"},
	})
	require.NoError(t, err)

	updated, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "fresh-name", updated.Name)
	require.Equal(t, "event organizer", updated.Bio)
	require.Equal(t, entity.Array[string]{"music", "tech"}, updated.Interests)

	// Renaming to the own current name is allowed.
	_, err = domain.Update(userCtx, &model.UpdateUserRequest{Name: "fresh-name"})
	require.NoError(t, err)
}

func Test_userDomain_GetPublic(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	event, err := testutil.SampleEvent(ctx, &entity.Event{CreatedBy: user.ID})
	require.NoError(t, err)

	domain := NewUserDomain(
		repository.NewUserRepository(),
		repository.NewEventRepository(),
		&testutil.MockSearchCaller{},
	)

	resp, err := domain.GetPublic(ctx, &model.GetPublicProfileRequest{Name: user.Name})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.User.ID)
	require.Len(t, resp.Events, 1)
	require.Equal(t, event.ID, resp.Events[0].ID)

	// The public view hides the wallet address and role.
	require.Empty(t, resp.User.WalletAddress)
	require.Empty(t, resp.User.Role)

	_, err = domain.GetPublic(ctx, &model.GetPublicProfileRequest{Name: "nobody"})
	require.Error(t, err)
	require.Equal(t, "Not found user", err.Error())
}
