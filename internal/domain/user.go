package domain

import (
	"context"
	"errors"

	"github.com/tickex-lab/backend/internal/client"
	"github.com/tickex-lab/backend/internal/domain/search"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	Update(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	GetPublic(context.Context, *model.GetPublicProfileRequest) (*model.GetPublicProfileResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	eventRepo    repository.EventRepository
	searchCaller client.SearchCaller
}

func NewUserDomain(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	searchCaller client.SearchCaller,
) UserDomain {
	return &userDomain{
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		searchCaller: searchCaller,
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if req.Name != "" {
		existing, err := d.userRepo.GetByName(ctx, req.Name)
		if err == nil && existing.ID != userID {
			return nil, errorx.New(errorx.AlreadyExists, "This username is already taken")
		}

		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
			return nil, errorx.Unknown
		}
	}

	update := &entity.User{
		Name: req.Name,
		Bio:  req.Bio,
	}

	if req.Interests != nil {
		update.Interests = req.Interests
	}

	if req.SocialLinks != nil {
		links := entity.Map{}
		for k, v := range req.SocialLinks {
			links[k] = v
		}
		update.SocialLinks = links
	}

	if err := d.userRepo.UpdateByID(ctx, userID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	err = d.searchCaller.IndexUser(ctx, user.ID, search.UserData{Name: user.Name, Bio: user.Bio})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index user %s: %v", user.ID, err)
	}

	return &model.UpdateUserResponse{}, nil
}

func (d *userDomain) GetPublic(
	ctx context.Context, req *model.GetPublicProfileRequest,
) (*model.GetPublicProfileResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty username")
	}

	user, err := d.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	events, err := d.eventRepo.GetByCreator(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get events of user: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetPublicProfileResponse{
		User:   model.ConvertUser(user, false),
		Events: []model.Event{},
	}
	for i := range events {
		resp.Events = append(resp.Events, model.ConvertEvent(&events[i]))
	}

	return resp, nil
}
