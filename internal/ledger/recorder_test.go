package ledger

import (
	"context"
	"testing"

	"github.com/faraz1977/ai-visionary/internal/domain"
)

// The recorder is optional infrastructure: with no database configured it
// must be a silent no-op everywhere it is called.
func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	ctx := context.Background()

	r.Login(ctx, "s1")
	r.Upgrade(ctx, "s1")
	r.Job(ctx, "s1", domain.EditJob{Tool: domain.ToolEnhance, Status: domain.JobStatusSucceeded}, 1)
	r.Job(ctx, "s1", domain.EditJob{Tool: domain.ToolEnhance, Status: domain.JobStatusFailed, Error: "boom"}, 0)
}
