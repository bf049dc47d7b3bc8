package email

import (
	"sync"

	"greentech_backend/internal/logger"
)

// LogProvider logs instead of sending. Used when email is disabled.
type LogProvider struct{}

func (LogProvider) Send(email *Email) error {
	logger.Info("Email disabled, not sending", "to", email.To, "subject", email.Subject)
	return nil
}

func (LogProvider) SendTemplate(to []string, subject string, templateName string, _ TemplateData) error {
	logger.Info("Email disabled, not sending", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (LogProvider) Close() error { return nil }

// SentTemplate is one call recorded by MockProvider.
type SentTemplate struct {
	To       []string
	Subject  string
	Template string
	Data     TemplateData
}

// MockProvider records messages for tests. Set Err to make every send fail.
type MockProvider struct {
	mu        sync.Mutex
	Sent      []*Email
	Templates []SentTemplate
	Err       error
}

func (m *MockProvider) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, email)
	return nil
}

func (m *MockProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Templates = append(m.Templates, SentTemplate{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (m *MockProvider) Close() error { return nil }

// TemplateCount returns how many template messages were recorded.
func (m *MockProvider) TemplateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Templates)
}
