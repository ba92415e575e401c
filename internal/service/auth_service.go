package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/harithad-26/sparks-intern-progress-tracker/config"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrTokenRevoked       = errors.New("Session has been signed out")
	ErrNotRefreshToken    = errors.New("Refresh token required")
)

// RoleAdmin 门户唯一角色
const RoleAdmin = "admin"

// AuthEvent 会话状态变化事件
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
)

// AuthListener 会话事件回调；session 在 SIGNED_OUT 时为 nil
type AuthListener func(event AuthEvent, session *dto.SessionResponse)

// TokenBlacklist Token 黑名单（Redis 实现），为 nil 时退出登录仅通知监听者
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	GetSession(ctx context.Context, token string) (*dto.SessionResponse, error)
	SignOut(ctx context.Context, token string) error
	// OnAuthStateChange 注册监听者，返回取消订阅函数
	OnAuthStateChange(fn AuthListener) func()
}

type authService struct {
	cfg       *config.AuthConfig
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger

	mu        sync.RWMutex
	nextID    int
	listeners map[int]AuthListener
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.AuthConfig,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
		listeners: make(map[int]AuthListener),
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 校验账号（配置中的唯一管理员）
	if !strings.EqualFold(strings.TrimSpace(req.Email), s.cfg.AdminEmail) {
		return nil, ErrInvalidCredentials
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	resp, err := s.issue(s.cfg.AdminEmail, req.RememberMe)
	if err != nil {
		return nil, err
	}

	s.logger.Info("管理员登录", zap.String("email", s.cfg.AdminEmail))
	s.notify(EventSignedIn, s.sessionFromClaims(&jwt.Claims{Email: s.cfg.AdminEmail, Role: RoleAdmin}))
	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.verify(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrNotRefreshToken
	}

	// 旧 refresh token 作废，防止重复使用
	s.revoke(ctx, claims)

	resp, err := s.issue(claims.Email, claims.RememberMe)
	if err != nil {
		return nil, err
	}
	s.notify(EventTokenRefreshed, s.sessionFromClaims(claims))
	return resp, nil
}

func (s *authService) GetSession(ctx context.Context, token string) (*dto.SessionResponse, error) {
	claims, err := s.verify(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.sessionFromClaims(claims), nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	claims, err := s.verify(ctx, token)
	if err != nil {
		return err
	}
	s.revoke(ctx, claims)
	s.logger.Info("管理员退出登录", zap.String("email", claims.Email))
	s.notify(EventSignedOut, nil)
	return nil
}

func (s *authService) OnAuthStateChange(fn AuthListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// ── 内部辅助 ──

func (s *authService) issue(email string, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(email, RoleAdmin)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(email, RoleAdmin, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTTL().Seconds()),
		Email:        email,
	}, nil
}

// verify 解析 Token 并检查黑名单；Redis 不可用时放行
func (s *authService) verify(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("检查 Token 黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

func (s *authService) revoke(ctx context.Context, claims *jwt.Claims) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
		s.logger.Warn("Token 加入黑名单失败", zap.Error(err))
	}
}

func (s *authService) sessionFromClaims(claims *jwt.Claims) *dto.SessionResponse {
	session := &dto.SessionResponse{Email: claims.Email, Role: claims.Role}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return session
}

// notify 同步回调全部监听者；耗时处理由监听者自行异步化
func (s *authService) notify(event AuthEvent, session *dto.SessionResponse) {
	s.mu.RLock()
	fns := make([]AuthListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(event, session)
	}
}
