package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/storage"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type size struct {
	w int
	h int
}

func (s size) String() string {
	return fmt.Sprintf("%dx%d", s.w, s.h)
}

var (
	AvatarSizes = []size{
		{w: 512, h: 512},
		{w: 128, h: 128},
		{w: 32, h: 32},
	}
)

// ProcessAvatar resizes the uploaded image to every avatar size and uploads all
// of them in one batch. The responses follow the order of AvatarSizes.
func ProcessAvatar(ctx context.Context, fileStorage storage.Storage, key string) ([]*storage.UploadResponse, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Error retrieving the File")
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	img, err := decodeImg(mime, file)
	if err != nil {
		return nil, err
	}

	objs := make([]*storage.UploadObject, len(AvatarSizes))
	eg, _ := errgroup.WithContext(ctx)
	for i, size := range AvatarSizes {
		i, size := i, size
		eg.Go(func() error {
			resized := resize.Resize(uint(size.w), uint(size.h), img, resize.Lanczos2)
			b, err := encodeImg(mime, resized)
			if err != nil {
				return err
			}

			objs[i] = &storage.UploadObject{
				Bucket:   string(entity.Image),
				Prefix:   "avatars",
				FileName: fmt.Sprintf("%dx%d-%s", size.w, size.h, header.Filename),
				Mime:     mime,
				Data:     b,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
		return nil, errorx.Unknown
	}

	uresp, err := fileStorage.BulkUpload(ctx, objs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return uresp, nil
}

// ProcessImage validates and uploads a single image without resizing.
func ProcessImage(ctx context.Context, fileStorage storage.Storage, key string) (*storage.UploadResponse, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Error retrieving the File")
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	img, err := decodeImg(mime, file)
	if err != nil {
		return nil, err
	}

	b, err := encodeImg(mime, img)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
		return nil, errorx.Unknown
	}

	uresp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   string(entity.Image),
		Prefix:   "events",
		FileName: header.Filename,
		Mime:     mime,
		Data:     b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return uresp, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, errorx.New(errorx.BadRequest, "We just accept jpeg, gif or png")
	}
	return img, err
}

func encodeImg(mime string, img image.Image) (b []byte, err error) {
	buf := new(bytes.Buffer)

	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png", "application/octet-stream":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, errorx.New(errorx.BadRequest, "We just accept jpeg, gif or png")
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}
