package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translated admin strings keyed by message ID. English is the source text
// and doubles as the fallback for unsupported languages.
var translations = map[language.Tag]map[string]string{
	language.English: {
		"nav.dashboard":           "Dashboard",
		"nav.articles":            "Articles",
		"nav.redirects":           "Redirects",
		"action.add_article":      "Add article",
		"action.add_redirect":     "Add redirect",
		"action.save":             "Save",
		"action.delete":           "Delete",
		"action.cancel":           "Cancel",
		"confirm.delete_question": "Are you sure you want to delete this %s?",
		"dashboard.title":         "Dashboard",
		"dashboard.articles":      "Articles",
		"dashboard.redirects":     "Redirects",
	},
	language.BrazilianPortuguese: {
		"nav.dashboard":           "Painel",
		"nav.articles":            "Artigos",
		"nav.redirects":           "Redirecionamentos",
		"action.add_article":      "Adicionar artigo",
		"action.add_redirect":     "Adicionar redirecionamento",
		"action.save":             "Salvar",
		"action.delete":           "Excluir",
		"action.cancel":           "Cancelar",
		"confirm.delete_question": "Tem certeza de que deseja excluir este %s?",
		"dashboard.title":         "Painel",
		"dashboard.articles":      "Artigos",
		"dashboard.redirects":     "Redirecionamentos",
	},
}

func init() {
	for tag, strings := range translations {
		for key, value := range strings {
			message.SetString(tag, key, value)
		}
	}
}
