package handlers

import (
	"log"
	"net/http"

	"mathexpert-backend/internal/models"
	"mathexpert-backend/internal/prompts"
	"mathexpert-backend/internal/web"
)

type languageInfo struct {
	Name        models.Language `json:"name"`
	Placeholder string          `json:"placeholder"`
	InputLabel  string          `json:"input_label"`
}

type languagesResponse struct {
	Languages []languageInfo   `json:"languages"`
	Examples  []models.Example `json:"examples"`
}

func languageList() []languageInfo {
	out := make([]languageInfo, 0, len(models.Languages))
	for _, lang := range models.Languages {
		p, _ := prompts.Get(lang)
		out = append(out, languageInfo{Name: lang, Placeholder: p.Placeholder, InputLabel: p.InputLabel})
	}
	return out
}

func Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languagesResponse{
		Languages: languageList(),
		Examples:  models.Examples,
	})
}

// Index serves the single-page form.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Index.Execute(w, languagesResponse{Languages: languageList(), Examples: models.Examples}); err != nil {
		log.Printf("Failed to render index: %v", err)
	}
}
