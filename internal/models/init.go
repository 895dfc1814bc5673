package models

import (
	"strings"

	"github.com/rasoi-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminUsername = "owner"
	defaultAdminPassword = "rasoi@123"
)

// InitDefaultAdmin 初始化默认店主账号
func InitDefaultAdmin(username, password string) error {
	var count int64
	if err := DB.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}

	if username == "" {
		username = defaultAdminUsername
	}
	// 已有管理员时只保证默认账号为店主
	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", username).Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_owner_super_failed", "error", err)
		}
		return nil
	}

	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     strings.TrimSpace(username),
		DisplayName:  "Owner",
		PasswordHash: string(hash),
		IsSuper:      true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_owner_created_with_default_password", "username", admin.Username)
		logger.Warnw("default_owner_password_change_required", "username", admin.Username)
	} else {
		logger.Warnw("default_owner_created", "username", admin.Username, "password_hidden", true)
	}
	return nil
}
