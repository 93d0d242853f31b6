package dao

import (
	"fmt"

	"github.com/radhian/sip-engine/infra/db/model"

	"github.com/jinzhu/gorm"
)

func (d *dao) CreateUser(user model.User) error {
	if err := d.db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (d *dao) GetUserByID(userID string) (model.User, bool, error) {
	var user model.User
	if err := d.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return user, false, nil
		}
		return user, false, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, true, nil
}

func (d *dao) GetUsers() ([]model.User, error) {
	users := make([]model.User, 0)
	if err := d.db.Order("create_time ASC, id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (d *dao) UpdateUser(user model.User) (bool, error) {
	res := d.db.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":  user.Name,
		"email": user.Email,
	})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *dao) DeleteUser(userID string) (bool, error) {
	res := d.db.Where("id = ?", userID).Delete(&model.User{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *dao) UserExists(userID string) (bool, error) {
	n, err := d.count(&model.User{}, "id = ?", userID)
	return n > 0, err
}

func (d *dao) CountUsers() (int64, error) {
	return d.count(&model.User{}, "")
}
