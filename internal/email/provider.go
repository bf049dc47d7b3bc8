package email

// Provider sends email messages.
type Provider interface {
	Send(email *Email) error

	// SendTemplate renders templateName with data as the HTML body.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	Close() error
}

// TemplateRenderer renders named templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
