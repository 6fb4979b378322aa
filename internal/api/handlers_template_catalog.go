package api

var pageTemplates = []string{
	"landing",
	"intake",
	"not_found",
}

var partialTemplateFiles = []string{"intake_form_partial.html"}
