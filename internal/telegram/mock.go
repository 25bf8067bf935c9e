package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var _ Gateway = (*MockGateway)(nil)

// MockGateway is a mock implementation of the Gateway interface for testing.
// It records everything handed to it and hands out increasing message ids.
type MockGateway struct {
	mu sync.Mutex

	SentMessages []tgbotapi.MessageConfig
	Requests     []tgbotapi.Chattable
	Admins       []tgbotapi.ChatMember

	SendErr      error
	RequestErr   error
	AdminsErr    error
	UpdateSource chan tgbotapi.Update

	nextMessageID int
}

// NewMockGateway creates a new mock instance.
func NewMockGateway() *MockGateway {
	return &MockGateway{UpdateSource: make(chan tgbotapi.Update)}
}

func (m *MockGateway) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return tgbotapi.Message{}, m.SendErr
	}
	m.nextMessageID++
	msg := tgbotapi.Message{MessageID: m.nextMessageID}
	if mc, ok := c.(tgbotapi.MessageConfig); ok {
		m.SentMessages = append(m.SentMessages, mc)
		msg.Text = mc.Text
	}
	return msg, nil
}

func (m *MockGateway) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, c)
	if m.RequestErr != nil {
		return nil, m.RequestErr
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *MockGateway) GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AdminsErr != nil {
		return nil, m.AdminsErr
	}
	return m.Admins, nil
}

func (m *MockGateway) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return m.UpdateSource
}

// LastMessage returns the text of the most recently sent message.
func (m *MockGateway) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return ""
	}
	return m.SentMessages[len(m.SentMessages)-1].Text
}

// Edits returns the recorded message-edit requests.
func (m *MockGateway) Edits() []tgbotapi.EditMessageTextConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	var edits []tgbotapi.EditMessageTextConfig
	for _, r := range m.Requests {
		if e, ok := r.(tgbotapi.EditMessageTextConfig); ok {
			edits = append(edits, e)
		}
	}
	return edits
}
