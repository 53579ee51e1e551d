package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

// -- Page Mock --

// MockPage mocks the schemas.Page interface.
type MockPage struct {
	mock.Mock
}

var _ schemas.Page = (*MockPage)(nil)

func (m *MockPage) Navigate(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}
func (m *MockPage) ClickByRole(ctx context.Context, role schemas.Role, name string) error {
	return m.Called(ctx, role, name).Error(0)
}
func (m *MockPage) FillByPlaceholder(ctx context.Context, placeholder, text string) error {
	return m.Called(ctx, placeholder, text).Error(0)
}
func (m *MockPage) WaitForSelector(ctx context.Context, selector string) error {
	return m.Called(ctx, selector).Error(0)
}
func (m *MockPage) Click(ctx context.Context, selector string) error {
	return m.Called(ctx, selector).Error(0)
}
func (m *MockPage) InnerText(ctx context.Context, selector string) (string, error) {
	args := m.Called(ctx, selector)
	return args.String(0), args.Error(1)
}
func (m *MockPage) TextContent(ctx context.Context, selector string) (string, bool, error) {
	args := m.Called(ctx, selector)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *MockPage) InnerTexts(ctx context.Context, selector string) ([]string, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockPage) SwitchToNewTab(ctx context.Context, viewport schemas.Viewport) error {
	return m.Called(ctx, viewport).Error(0)
}
func (m *MockPage) WaitForDialog(ctx context.Context) (schemas.Dialog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return schemas.Dialog{}, args.Error(1)
	}
	return args.Get(0).(schemas.Dialog), args.Error(1)
}
func (m *MockPage) Wait(ctx context.Context, d time.Duration) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockPage) URL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockPage) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// -- Page Factory Mock --

// MockPageFactory mocks the schemas.PageFactory interface.
type MockPageFactory struct {
	mock.Mock
}

var _ schemas.PageFactory = (*MockPageFactory)(nil)

func (m *MockPageFactory) NewPage(ctx context.Context) (schemas.Page, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(schemas.Page), args.Error(1)
}
