package repository

import (
	"context"

	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	GetByWalletAddress(ctx context.Context, address string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.Bio != "" {
		updateMap["bio"] = data.Bio
	}

	if data.ProfilePicture != nil {
		updateMap["profile_picture"] = data.ProfilePicture
	}

	if data.Interests != nil {
		updateMap["interests"] = data.Interests
	}

	if data.SocialLinks != nil {
		updateMap["social_links"] = data.SocialLinks
	}

	if data.WalletAddress.Valid {
		updateMap["wallet_address"] = data.WalletAddress
	}

	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByWalletAddress(ctx context.Context, address string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("wallet_address=?", address).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
