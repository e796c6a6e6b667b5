package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/faraz1977/ai-visionary/internal/domain"
	"github.com/faraz1977/ai-visionary/internal/genai"
	"github.com/faraz1977/ai-visionary/internal/infra"
	"github.com/faraz1977/ai-visionary/internal/session"
)

// MaxUploadBytes caps uploaded source images.
const MaxUploadBytes = 10 << 20

var allowedMIMEs = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// Controller drives the per-session edit job through its state machine:
// NoImage -> ImageLoaded -> Running -> Succeeded | Failed. All guards are
// explicit here, independent of any presentation layer.
type Controller struct {
	editor genai.Editor
	logger infra.Logger
}

// NewController wires the controller to an edit invoker.
func NewController(editor genai.Editor, logger infra.Logger) *Controller {
	return &Controller{editor: editor, logger: logger}
}

// LoadImage creates a fresh job for the tool from an uploaded image,
// clearing any prior result. PNG and JPEG up to 10MB are accepted.
func (c *Controller) LoadImage(st *session.State, tool domain.ToolID, img domain.Image) (domain.EditJob, error) {
	if img.IsZero() {
		return domain.EditJob{}, domain.ErrNoImage
	}
	if len(img.Data) > MaxUploadBytes {
		return domain.EditJob{}, domain.ErrImageTooLarge
	}
	if !allowedMIMEs[img.MIME] {
		return domain.EditJob{}, domain.ErrUnsupportedImage
	}
	if _, ok := domain.ToolByID(tool); !ok {
		return domain.EditJob{}, domain.ErrNotFound
	}

	var snapshot domain.EditJob
	var loadErr error
	st.With(func(s *session.State) {
		if s.Job != nil && s.Job.Status == domain.JobStatusRunning {
			loadErr = domain.ErrJobRunning
			return
		}
		now := time.Now().UTC()
		s.Job = &domain.EditJob{
			ID:        uuid.NewString(),
			Tool:      tool,
			Status:    domain.JobStatusImageLoaded,
			Source:    img,
			CreatedAt: now,
			UpdatedAt: now,
		}
		snapshot = *s.Job
	})
	if loadErr != nil {
		return domain.EditJob{}, loadErr
	}
	return snapshot, nil
}

// Process runs the loaded job against the edit invoker. Affordability is
// checked before anything else: an account that cannot cover the tool cost
// sees no state change, no remote call, and exactly one upgrade-prompt
// signal on the navigator. While the invoker call is in flight the job is
// Running and a second Process is rejected. A successful call stores the
// result and debits exactly the tool cost; a failed one leaves the account
// untouched, since no debit happens before success.
func (c *Controller) Process(ctx context.Context, st *session.State) (domain.EditJob, error) {
	var (
		job  *domain.EditJob
		tool domain.Tool
		src  domain.Image
		gate error
	)
	st.With(func(s *session.State) {
		if s.Account == nil {
			gate = domain.ErrUnauthorized
			return
		}
		if s.Job == nil || s.Job.Status == domain.JobStatusNoImage {
			gate = domain.ErrNoImage
			return
		}
		if s.Job.Status == domain.JobStatusRunning {
			gate = domain.ErrJobRunning
			return
		}
		t, ok := domain.ToolByID(s.Job.Tool)
		if !ok {
			gate = domain.ErrNotFound
			return
		}
		if s.Account.Credits < t.Credits {
			s.Nav.RequestUpgrade()
			gate = domain.ErrInsufficientCredits
			return
		}
		s.Job.Status = domain.JobStatusRunning
		s.Job.Result = domain.Image{}
		s.Job.Error = ""
		s.Job.UpdatedAt = time.Now().UTC()
		job = s.Job
		tool = t
		src = s.Job.Source
	})
	if gate != nil {
		return domain.EditJob{}, gate
	}

	// The suspension point. The session lock is not held across it.
	result, err := c.editor.Edit(ctx, src, tool.ID)

	var snapshot domain.EditJob
	st.With(func(s *session.State) {
		if s.Job != job {
			// Job was replaced while running; drop the outcome.
			return
		}
		s.Job.UpdatedAt = time.Now().UTC()
		if err != nil {
			s.Job.Status = domain.JobStatusFailed
			s.Job.Error = err.Error()
			snapshot = *s.Job
			return
		}
		s.Job.Status = domain.JobStatusSucceeded
		s.Job.Result = result
		if !s.Account.Debit(tool.Credits) {
			// Unreachable while one job per session holds: affordability
			// was checked before the call and nothing else spends.
			c.logger.Error().
				Str("job_id", s.Job.ID).
				Int("cost", tool.Credits).
				Int("balance", s.Account.Credits).
				Msg("workflow: post-success debit refused")
		}
		snapshot = *s.Job
	})
	if err != nil {
		return snapshot, fmt.Errorf("process %s: %w", tool.ID, err)
	}
	return snapshot, nil
}

// Download exposes the result bytes for a succeeded job together with the
// deterministic filename derived from the tool identifier.
func (c *Controller) Download(st *session.State) (string, domain.Image, error) {
	var (
		name string
		img  domain.Image
		gate error
	)
	st.With(func(s *session.State) {
		if s.Job == nil || s.Job.Status != domain.JobStatusSucceeded {
			gate = domain.ErrNoResult
			return
		}
		name = domain.DownloadName(s.Job.Tool)
		img = s.Job.Result
	})
	if gate != nil {
		return "", domain.Image{}, gate
	}
	return name, img, nil
}

// Clear discards the job, e.g. when the user picks a new file or leaves
// the tool view. A running job cannot be cleared.
func (c *Controller) Clear(st *session.State) error {
	var gate error
	st.With(func(s *session.State) {
		if s.Job != nil && s.Job.Status == domain.JobStatusRunning {
			gate = domain.ErrJobRunning
			return
		}
		s.Job = nil
	})
	return gate
}

// Status returns a copy of the current job, if any.
func (c *Controller) Status(st *session.State) (domain.EditJob, bool) {
	var (
		snapshot domain.EditJob
		ok       bool
	)
	st.With(func(s *session.State) {
		if s.Job != nil {
			snapshot = *s.Job
			ok = true
		}
	})
	return snapshot, ok
}
