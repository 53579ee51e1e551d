package pages

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
	"github.com/xkilldash9x/wdu-e2e/internal/config"
)

// Manager builds every page object over the one Page a scenario owns.
type Manager struct {
	page    schemas.Page
	base    *Actions
	home    *HomePage
	contact *ContactUsPage
	login   *LoginPage
}

func NewManager(page schemas.Page, cfg *config.Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	viewport := schemas.Viewport{Width: int64(cfg.Browser.Width), Height: int64(cfg.Browser.Height)}
	base := NewActions(page, viewport, logger.Named("pages"))

	return &Manager{
		page:    page,
		base:    base,
		home:    &HomePage{Actions: base},
		contact: &ContactUsPage{Actions: base},
		login:   &LoginPage{Actions: base, loginURL: cfg.LoginURL()},
	}
}

func (m *Manager) Page() schemas.Page            { return m.page }
func (m *Manager) Base() *Actions                { return m.base }
func (m *Manager) HomePage() *HomePage           { return m.home }
func (m *Manager) ContactUsPage() *ContactUsPage { return m.contact }
func (m *Manager) LoginPage() *LoginPage         { return m.login }
