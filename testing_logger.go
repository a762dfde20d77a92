package eloop

import (
	"github.com/stretchr/testify/mock"
)

type mockLogger struct {
	mock.Mock

	tapError func(msg string)
	tapDebug func(msg string)
}

func (m *mockLogger) WithField(key string, value any) Logger {
	return m
}

func (m *mockLogger) Debug(args ...any) {
	if m.tapDebug != nil && len(args) > 0 {
		if msg, ok := args[0].(string); ok {
			m.tapDebug(msg)
		}
	}
}

func (m *mockLogger) Debugf(format string, args ...any) {
	if m.tapDebug != nil {
		m.tapDebug(format)
	}
}
func (m *mockLogger) Debugln(args ...any)               {}
func (m *mockLogger) Info(args ...any)                  {}
func (m *mockLogger) Infof(format string, args ...any)  {}
func (m *mockLogger) Infoln(args ...any)                {}
func (m *mockLogger) Warn(args ...any)                  {}
func (m *mockLogger) Warnf(format string, args ...any)  {}
func (m *mockLogger) Warnln(args ...any)                {}

func (m *mockLogger) Error(args ...any) {
	m.Called(args)
}

func (m *mockLogger) Errorf(format string, args ...any) {
	if m.tapError != nil {
		m.tapError(format)
	}
	m.Called(format, args)
}

func (m *mockLogger) Errorln(args ...any) {
	m.Called(args)
}
