package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"usermanagement/internal/model"
)

// UserRepository owns the user collection and id assignment.
type UserRepository interface {
	// List returns a snapshot of every user in insertion order.
	List(ctx context.Context) ([]model.User, error)
	// FindByID reports false when no user has the id.
	FindByID(ctx context.Context, id uint) (*model.User, bool, error)
	// Create assigns the next id and stores the user.
	Create(ctx context.Context, req model.UserRequest) (*model.User, error)
	// Replace overwrites all mutable fields; false when the id is absent.
	Replace(ctx context.Context, id uint, req model.UserRequest) (bool, error)
	// Remove deletes the user; false when the id is absent.
	Remove(ctx context.Context, id uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, bool, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) Create(ctx context.Context, req model.UserRequest) (*model.User, error) {
	user := req.NewUser()
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Replace(ctx context.Context, id uint, req model.UserRequest) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"full_name":  req.FullName,
			"email":      req.Email,
			"department": req.Department,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) Remove(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
