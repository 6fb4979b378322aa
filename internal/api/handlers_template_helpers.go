package api

import (
	"html/template"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":    templateTranslate,
		"dict": templateDict,
	}
}
