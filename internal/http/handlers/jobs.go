package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/faraz1977/ai-visionary/internal/domain"
	"github.com/faraz1977/ai-visionary/internal/session"
	"github.com/faraz1977/ai-visionary/internal/workflow"
)

type jobDTO struct {
	ID           string    `json:"id"`
	Tool         string    `json:"tool"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	HasResult    bool      `json:"has_result"`
	DownloadName string    `json:"download_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toJobDTO(job domain.EditJob) jobDTO {
	dto := jobDTO{
		ID:        job.ID,
		Tool:      string(job.Tool),
		Status:    string(job.Status),
		Error:     job.Error,
		HasResult: !job.Result.IsZero(),
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
	if job.Status == domain.JobStatusSucceeded {
		dto.DownloadName = domain.DownloadName(job.Tool)
	}
	return dto
}

// JobUpload accepts a multipart upload (field "image", optional field
// "tool") and loads it into a fresh edit job. Without an explicit tool the
// session's active tool is used.
func (a *App) JobUpload(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, workflow.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(workflow.MaxUploadBytes); err != nil {
		a.domainError(w, domain.ErrImageTooLarge)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read image")
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	mime = strings.ToLower(strings.TrimSpace(strings.Split(mime, ";")[0]))

	toolParam := r.FormValue("tool")
	var tool domain.ToolID
	if toolParam != "" {
		id, ok := domain.ParseToolID(toolParam)
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown tool")
			return
		}
		tool = id
	} else {
		st.With(func(s *session.State) { tool = s.Nav.ActiveTool })
		if tool == "" {
			a.error(w, http.StatusBadRequest, "bad_request", "no tool selected")
			return
		}
	}

	job, err := a.Workflow.LoadImage(st, tool, domain.Image{Data: data, MIME: mime})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toJobDTO(job))
}

// JobProcess runs the loaded job through the edit invoker. The request
// blocks until the invocation resolves; a second call while one is in
// flight is rejected.
func (a *App) JobProcess(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}

	job, err := a.Workflow.Process(r.Context(), st)
	if err != nil {
		if job.Status == domain.JobStatusFailed {
			a.Ledger.Job(r.Context(), st.ID, job, 0)
		}
		a.domainError(w, err)
		return
	}

	spent := 0
	if tool, ok := domain.ToolByID(job.Tool); ok {
		spent = tool.Credits
	}
	a.Ledger.Job(r.Context(), st.ID, job, spent)
	a.exportResult(r, st.ID, job)

	var credits int
	st.With(func(s *session.State) { credits = s.Account.Credits })
	a.json(w, http.StatusOK, map[string]any{
		"job":     toJobDTO(job),
		"credits": credits,
	})
}

// JobStatus returns the current job, if any.
func (a *App) JobStatus(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	job, exists := a.Workflow.Status(st)
	if !exists {
		a.error(w, http.StatusNotFound, "not_found", "no job for this session")
		return
	}
	a.json(w, http.StatusOK, toJobDTO(job))
}

// JobResult streams the processed image as a download named after the tool.
func (a *App) JobResult(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	name, img, err := a.Workflow.Download(st)
	if err != nil {
		a.domainError(w, err)
		return
	}
	mime := img.MIME
	if mime == "" {
		mime = "image/png"
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// JobClear discards the job, matching the user picking a new file or
// leaving the tool view.
func (a *App) JobClear(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	if err := a.Workflow.Clear(st); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportResult writes a local copy of a successful result when a results
// directory is configured.
func (a *App) exportResult(r *http.Request, sessionID string, job domain.EditJob) {
	if a.Results == nil || job.Status != domain.JobStatusSucceeded || job.Result.IsZero() {
		return
	}
	key := path.Join("sessions", sessionID, job.ID+"_"+domain.DownloadName(job.Tool))
	if _, err := a.Results.Write(r.Context(), key, job.Result.Data); err != nil {
		a.Logger.Warn().Err(err).Str("job_id", job.ID).Msg("results: export failed")
	}
}
