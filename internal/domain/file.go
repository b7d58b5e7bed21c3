package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tickex-lab/backend/internal/common"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/storage"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
}

type fileDomain struct {
	fileStorage storage.Storage
	fileRepo    repository.FileRepository
	userRepo    repository.UserRepository
}

func NewFileDomain(
	fileStorage storage.Storage,
	fileRepo repository.FileRepository,
	userRepo repository.UserRepository,
) FileDomain {
	return &fileDomain{
		fileStorage: fileStorage,
		fileRepo:    fileRepo,
		userRepo:    userRepo,
	}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	resp, err := common.ProcessImage(ctx, d.fileStorage, "image")
	if err != nil {
		return nil, err
	}

	if err := d.fileRepo.Create(ctx, fileRecord(resp, userID)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record uploaded file: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadImageResponse{Url: resp.Url}, nil
}

func (d *fileDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	resps, err := common.ProcessAvatar(ctx, d.fileStorage, "image")
	if err != nil {
		return nil, err
	}

	files := make([]*entity.File, 0, len(resps))
	for _, resp := range resps {
		files = append(files, fileRecord(resp, userID))
	}

	if err := d.fileRepo.BulkInsert(ctx, files); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record uploaded files: %v", err)
		return nil, errorx.Unknown
	}

	urls := entity.Map{}
	for i, resp := range resps {
		urls[common.AvatarSizes[i].String()] = resp.Url
	}

	err = d.userRepo.UpdateByID(ctx, userID, &entity.User{ProfilePicture: urls})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update profile picture: %v", err)
		return nil, errorx.Unknown
	}

	result := map[string]string{}
	for k, v := range urls {
		result[k] = fmt.Sprint(v)
	}

	return &model.UploadAvatarResponse{Urls: result}, nil
}

func fileRecord(resp *storage.UploadResponse, userID string) *entity.File {
	return &entity.File{
		Base:      entity.Base{ID: uuid.NewString()},
		Mime:      resp.Mime,
		Name:      resp.FileName,
		CreatedBy: userID,
		Url:       resp.Url,
	}
}
