package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"gigmatch/internal/app"
	"gigmatch/internal/httputil"
	"gigmatch/internal/skills"
)

type extractSkillsRequest struct {
	Text string `json:"text" validate:"required"`
}

type relatedSkillsRequest struct {
	Skills []string `json:"skills" validate:"required"`
	Limit  int      `json:"limit" validate:"omitempty,min=1,max=50"`
}

type validateSkillsRequest struct {
	Skills []string `json:"skills" validate:"required"`
}

func extractSkillsHandler(deps app.Deps, svc *skills.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req extractSkillsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, svc.Extract(req.Text))
	}
}

// extractFileHandler accepts a resume upload (PDF or plain text) and runs
// skill extraction on its text.
func extractFileHandler(deps app.Deps, svc *skills.Service) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".pdf" && ext != ".txt" {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF and TXT allowed)", nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		text := string(content)
		if ext == ".pdf" {
			extracted, err := extractPDF(content)
			if err != nil {
				deps.Log.Warn("pdf extraction failed, using raw bytes", "err", err, "filename", header.Filename)
			} else {
				text = extracted
			}
		}

		httputil.WriteJSON(w, http.StatusOK, svc.Extract(text))
	}
}

func relatedSkillsHandler(deps app.Deps, svc *skills.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req relatedSkillsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		related, err := svc.Related(r.Context(), req.Skills, req.Limit)
		if err != nil {
			httputil.FailFromError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"related_skills": related})
	}
}

func validateSkillsHandler(deps app.Deps, svc *skills.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateSkillsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		result, err := svc.Validate(r.Context(), req.Skills)
		if err != nil {
			httputil.FailFromError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}

func extractPDF(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
