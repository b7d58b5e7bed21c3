package repository

import (
	"context"

	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type FileRepository interface {
	Create(ctx context.Context, data *entity.File) error
	BulkInsert(ctx context.Context, data []*entity.File) error
}

type fileRepository struct{}

func NewFileRepository() *fileRepository {
	return &fileRepository{}
}

func (r *fileRepository) Create(ctx context.Context, data *entity.File) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *fileRepository) BulkInsert(ctx context.Context, data []*entity.File) error {
	return xcontext.DB(ctx).Create(data).Error
}
