package email

type Email struct {
	From     string
	To       []string
	Cc       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the data passed to a template.
type TemplateData map[string]interface{}

// Template names known to DefaultTemplates.
const (
	TemplateWelcome        = "welcome"
	TemplateStartupClaimed = "startup_claimed"
)
