package verify

import "github.com/stretchr/testify/mock"

// mockCheck is a testify mock for the Check interface.
type mockCheck struct {
	mock.Mock
}

func (m *mockCheck) Name() string {
	return m.Called().String(0)
}

func (m *mockCheck) Category() string {
	return m.Called().String(0)
}

func (m *mockCheck) Run(ctx *Context) *CheckResult {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.(*CheckResult)
	}
	return nil
}

// newMockCheck returns a mock whose accessors answer with fixed values.
func newMockCheck(name, category string, result *CheckResult) *mockCheck {
	m := &mockCheck{}
	m.On("Name").Return(name).Maybe()
	m.On("Category").Return(category).Maybe()
	m.On("Run", mock.Anything).Return(result).Maybe()
	return m
}
