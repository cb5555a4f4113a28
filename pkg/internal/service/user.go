package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeisme/cloudvault/pkg/configs"
	ctxPkg "github.com/yeisme/cloudvault/pkg/context"
	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/storage/db"
	"github.com/yeisme/cloudvault/pkg/internal/types"
	nlog "github.com/yeisme/cloudvault/pkg/log"
	"github.com/yeisme/cloudvault/pkg/middleware"
)

// UserService 账户管理：注册、登录与资料维护. 密码只保存 bcrypt 哈希.
type UserService struct {
	dbClient *db.Client
}

// NewUserService 从 context 获取依赖实例.
func NewUserService(c context.Context) *UserService {
	dbc := ctxPkg.GetDBClient(c)

	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &UserService{dbClient: dbc}
}

// Register 注册新账户. 用户名与邮箱全局唯一.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || email == "" {
		return nil, types.InvalidArgument("username and email are required")
	}

	var count int64

	err := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, types.Conflict("username or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:       newID(),
		Username: username,
		Email:    email,
		FullName: req.FullName,
		Password: string(hash),
	}

	if err := s.dbClient.GetDB().WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return toUserResponse(&user), nil
}

// Login 校验邮箱与密码，签发 JWT 访问令牌.
// 账户不存在与密码错误返回同样的错误，避免枚举探测.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user model.User

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.InvalidArgument("invalid email or password")
		}

		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, types.InvalidArgument("invalid email or password")
	}

	token, expiresAt, err := middleware.IssueToken(user.ID, user.Username, configs.GetConfig().Auth)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{
		User:        *toUserResponse(&user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// GetByID 获取用户信息.
func (s *UserService) GetByID(ctx context.Context, id string) (*types.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

// ChangePassword 修改密码，旧密码校验失败返回 InvalidArgument.
func (s *UserService) ChangePassword(ctx context.Context, id string, req *types.ChangePasswordRequest) error {
	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return types.InvalidArgument("old password does not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.dbClient.GetDB().WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", string(hash)).Error
}

// UpdateEmail 修改邮箱，需通过全局唯一性检查.
func (s *UserService) UpdateEmail(ctx context.Context, id string, req *types.UpdateEmailRequest) (*types.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64

	err := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.User{}).
		Where("email = ? AND id <> ?", email, id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, types.Conflict("email already registered")
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("email", email).Error; err != nil {
		return nil, err
	}

	user.Email = email

	return toUserResponse(user), nil
}

// UpdateFullName 修改姓名.
func (s *UserService) UpdateFullName(ctx context.Context, id string, req *types.UpdateFullNameRequest) (*types.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("full_name", req.FullName).Error; err != nil {
		return nil, err
	}

	user.FullName = req.FullName

	return toUserResponse(user), nil
}

// ReconcileStorageUsage 以 files 表的实际大小校准 storage_used 计数，
// 返回被修正的账户数. 由定时任务周期性调用.
func (s *UserService) ReconcileStorageUsage(ctx context.Context) (int64, error) {
	res := s.dbClient.GetDB().WithContext(ctx).Exec(
		`UPDATE users
		    SET storage_used = COALESCE((SELECT SUM(size) FROM files WHERE files.owner_id = users.id), 0)
		  WHERE storage_used <> COALESCE((SELECT SUM(size) FROM files WHERE files.owner_id = users.id), 0)`)

	return res.RowsAffected, res.Error
}

func (s *UserService) get(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user %s not found", id)
		}

		return nil, err
	}

	return &user, nil
}

func toUserResponse(user *model.User) *types.UserResponse {
	return &types.UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		StorageUsed:  user.StorageUsed,
		StorageQuota: user.StorageQuota,
		CreatedAt:    user.CreatedAt,
	}
}
