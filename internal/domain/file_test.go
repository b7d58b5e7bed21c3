package domain

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/storage"
	"github.com/tickex-lab/backend/pkg/testutil"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

func newMultipartImageRequest(t *testing.T, target string) *http.Request {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	img.Set(2, 3, color.RGBA{R: 255, A: 255})

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("image", "out.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(fw, img))
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, target, body)
	request.Header.Add("Content-Type", writer.FormDataContentType())
	return request
}

func Test_fileDomain_UploadImage(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	stg := &testutil.MockStorage{
		UploadFunc: func(ctx context.Context, obj *storage.UploadObject) (*storage.UploadResponse, error) {
			return &storage.UploadResponse{
				Url:      "https://cdn.example.com/image/events/out.png",
				FileName: "events/out.png",
				Mime:     obj.Mime,
			}, nil
		},
	}

	domain := NewFileDomain(stg, repository.NewFileRepository(), repository.NewUserRepository())

	uploadCtx := xcontext.WithHTTPRequest(ctx, newMultipartImageRequest(t, "/uploadImage"))
	uploadCtx = testutil.MockContextWithUserID(uploadCtx, user.ID)

	resp, err := domain.UploadImage(uploadCtx, &model.UploadImageRequest{})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/image/events/out.png", resp.Url)

	// The upload left a file record behind.
	var files []entity.File
	require.NoError(t, xcontext.DB(ctx).Find(&files).Error)
	require.Len(t, files, 1)
	require.Equal(t, user.ID, files[0].CreatedBy)
	require.Equal(t, resp.Url, files[0].Url)
}

func Test_fileDomain_UploadAvatar(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	stg := &testutil.MockStorage{
		BulkUploadFunc: func(ctx context.Context, objs []*storage.UploadObject) ([]*storage.UploadResponse, error) {
			resps := make([]*storage.UploadResponse, 0, len(objs))
			for _, obj := range objs {
				resps = append(resps, &storage.UploadResponse{
					Url:      "https://cdn.example.com/image/avatars/" + obj.FileName,
					FileName: "avatars/" + obj.FileName,
					Mime:     obj.Mime,
				})
			}
			return resps, nil
		},
	}

	domain := NewFileDomain(stg, repository.NewFileRepository(), repository.NewUserRepository())

	uploadCtx := xcontext.WithHTTPRequest(ctx, newMultipartImageRequest(t, "/uploadAvatar"))
	uploadCtx = testutil.MockContextWithUserID(uploadCtx, user.ID)

	resp, err := domain.UploadAvatar(uploadCtx, &model.UploadAvatarRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Urls, 3)

	// One file record per avatar size.
	var files []entity.File
	require.NoError(t, xcontext.DB(ctx).Find(&files).Error)
	require.Len(t, files, 3)

	// The profile picture now points at the resized uploads.
	stored, err := repository.NewUserRepository().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.ProfilePicture, 3)
	require.Contains(t, stored.ProfilePicture, "512x512")
}

func Test_fileDomain_UploadImage_RequiresAuthentication(t *testing.T) {
	ctx := testutil.MockContext()

	domain := NewFileDomain(
		&testutil.MockStorage{}, repository.NewFileRepository(), repository.NewUserRepository())

	_, err := domain.UploadImage(ctx, &model.UploadImageRequest{})
	require.Error(t, err)
	require.Equal(t, "You need to authenticate before", err.Error())
}
