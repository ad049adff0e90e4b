package email

// Provider is the outgoing-mail interface the services depend on.
type Provider interface {
	// Send dispatches a prepared message.
	Send(email *Email) error

	// SendTemplate renders the named template and sends it.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases any provider resources.
	Close() error
}

// TemplateRenderer renders named templates for SendTemplate.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
