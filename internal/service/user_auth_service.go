package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mymy-shop/internal/config"
	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultUserJWTExpireHours = 168
	memberIDSeqDigits         = 4
)

// UserAuthService 会员身份服务（手机号即登录凭证）
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	loc      *time.Location
	now      func() time.Time
}

// NewUserAuthService 创建会员身份服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	loc := time.Local
	if cfg != nil {
		loc = cfg.Shop.Location()
	}
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		loc:      loc,
		now:      time.Now,
	}
}

// UserJWTClaims 会员 JWT 声明
type UserJWTClaims struct {
	MemberID string `json:"member_id"`
	Phone    string `json:"phone"`
	jwt.RegisteredClaims
}

// ProfileInput 会员资料更新（nil 表示不修改）
type ProfileInput struct {
	Name     *string
	Address  *string
	Birthday *string
	Note     *string
}

// GenerateUserJWT 生成会员 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	hours := s.cfg.UserJWT.ExpireHours
	if hours <= 0 {
		hours = defaultUserJWTExpireHours
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := UserJWTClaims{
		MemberID: user.ID,
		Phone:    user.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析会员 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.MemberID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// LookupUserByPhone 按手机号查找会员
func (s *UserAuthService) LookupUserByPhone(phone string) (*models.User, error) {
	normalized, err := validPhone(phone)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByPhone(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Login 手机号登录并签发 Token
func (s *UserAuthService) Login(phone string) (*models.User, string, time.Time, error) {
	user, err := s.LookupUserByPhone(phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// RegisterUser 注册会员：会员编号 M + YYMMDD + 4 位流水
func (s *UserAuthService) RegisterUser(ctx context.Context, phone, name string) (*models.User, error) {
	normalized, err := validPhone(phone)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUserNameRequired
	}
	existing, err := s.userRepo.GetByPhone(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneExists
	}

	now := s.now().In(s.loc)
	base := constants.MemberIDPrefix + now.Format("060102")
	ids, err := s.userRepo.ListIDsWithPrefix(base)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:         fmt.Sprintf("%s%0*d", base, memberIDSeqDigits, maxSequence(ids, base)+1),
		Phone:      normalized,
		Name:       name,
		Tier:       constants.UserTierGeneral,
		TotalSpend: models.ZeroMoney(),
		Credits:    models.ZeroMoney(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	invalidateReportCache(ctx, "member_id", user.ID)
	return user, nil
}

// Register 注册并签发 Token
func (s *UserAuthService) Register(ctx context.Context, phone, name string) (*models.User, string, time.Time, error) {
	user, err := s.RegisterUser(ctx, phone, name)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// GetUserByID 获取会员
func (s *UserAuthService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 会员更新自己的资料
func (s *UserAuthService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrUserNameRequired
		}
		user.Name = name
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}
	if input.Birthday != nil {
		birthday, err := normalizeBirthday(*input.Birthday)
		if err != nil {
			return nil, err
		}
		user.Birthday = birthday
	}
	if input.Note != nil {
		user.Note = strings.TrimSpace(*input.Note)
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	invalidateReportCache(ctx, "member_id", user.ID)
	return user, nil
}

func validPhone(raw string) (string, error) {
	phone := NormalizePhone(raw)
	if phone == "" || !isDigits(phone) {
		return "", ErrPhoneInvalid
	}
	return phone, nil
}

// IsInvalidToken 判断是否为 Token 错误
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
