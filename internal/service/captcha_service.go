package service

import (
	"strings"
	"sync"
	"time"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"

	"github.com/mojocn/base64Captcha"
)

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaPublicSetting 可下发给后台登录页的配置
type CaptchaPublicSetting struct {
	Provider   string `json:"provider"`
	AdminLogin bool   `json:"admin_login"`
}

// CaptchaService 后台登录图片验证码
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: normalizeCaptchaConfig(cfg)}
}

// PublicSetting 获取公开配置
func (s *CaptchaService) PublicSetting() CaptchaPublicSetting {
	if s == nil {
		return CaptchaPublicSetting{Provider: constants.CaptchaProviderNone}
	}
	return CaptchaPublicSetting{
		Provider:   s.cfg.Provider,
		AdminLogin: s.IsSceneEnabled(constants.CaptchaSceneAdminLogin),
	}
}

// IsSceneEnabled 场景是否需要验证码
func (s *CaptchaService) IsSceneEnabled(scene string) bool {
	if s == nil || s.cfg.Provider != constants.CaptchaProviderImage {
		return false
	}
	switch scene {
	case constants.CaptchaSceneAdminLogin:
		return s.cfg.AdminLogin
	default:
		return false
	}
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s == nil || s.cfg.Provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfigInvalid
	}
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		s.cfg.Length,
		"23456789abcdefghjkmnpqrstuvwxyz",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.imageStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 按场景校验验证码，未开启的场景直接通过
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.IsSceneEnabled(scene) {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.imageStore().Verify(captchaID, strings.ToLower(captchaCode), true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) imageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		s.store = base64Captcha.NewMemoryStore(s.cfg.MaxStore, time.Duration(s.cfg.ExpireSeconds)*time.Second)
	}
	return s.store
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider != constants.CaptchaProviderImage {
		cfg.Provider = constants.CaptchaProviderNone
	}
	if cfg.Length < 4 || cfg.Length > 8 {
		cfg.Length = 5
	}
	if cfg.Width < 100 || cfg.Width > 480 {
		cfg.Width = 240
	}
	if cfg.Height < 40 || cfg.Height > 160 {
		cfg.Height = 80
	}
	if cfg.NoiseCount < 0 || cfg.NoiseCount > 20 {
		cfg.NoiseCount = 2
	}
	if cfg.ShowLine < 0 || cfg.ShowLine > 20 {
		cfg.ShowLine = 2
	}
	if cfg.ExpireSeconds < 30 || cfg.ExpireSeconds > 3600 {
		cfg.ExpireSeconds = 300
	}
	if cfg.MaxStore < 100 || cfg.MaxStore > 100000 {
		cfg.MaxStore = 10240
	}
	return cfg
}
