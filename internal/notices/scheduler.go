package notices

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"zephvault-backend/internal/shared/telemetry"
	"zephvault-backend/internal/tenants"
)

// Detail is the per-tenant outcome of a reminder sweep.
type Detail struct {
	Tenant     string `json:"tenant"`
	Unit       string `json:"unit"`
	NoticeType string `json:"noticeType"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

// RunResult summarizes one reminder sweep.
type RunResult struct {
	Total      int
	Successful int
	Failed     int
	Details    []Detail
}

// Runner performs the daily reminder sweep: one notice per tenant sitting on
// a threshold day, sequentially, with a throttle between sends. A failure for
// one tenant never stops the sweep.
type Runner struct {
	Tenants tenants.Repo
	Svc     *Service
	limiter *rate.Limiter
}

// NewRunner constructs a Runner throttled to one send per interval.
func NewRunner(tenantRepo tenants.Repo, svc *Service, sendInterval time.Duration) *Runner {
	if sendInterval <= 0 {
		sendInterval = time.Second
	}
	return &Runner{
		Tenants: tenantRepo,
		Svc:     svc,
		limiter: rate.NewLimiter(rate.Every(sendInterval), 1),
	}
}

// Run executes one sweep. The error is non-nil only when the reminder listing
// itself fails; individual send failures land in the result details.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	reminders, err := r.Tenants.ListNeedingReminders(ctx)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{Total: len(reminders)}
	for _, rem := range reminders {
		if err := r.limiter.Wait(ctx); err != nil {
			return result, err
		}

		detail := Detail{
			Tenant:     rem.FullName,
			Unit:       rem.UnitNumber,
			NoticeType: rem.NoticeType,
		}
		if err := r.Svc.SendNotice(ctx, rem.TenantID, rem.NoticeType); err != nil {
			detail.Message = err.Error()
			result.Failed++
		} else {
			detail.Success = true
			detail.Message = "Rent notice sent successfully"
			result.Successful++
		}
		result.Details = append(result.Details, detail)
	}

	telemetry.Info("reminders.sweep", map[string]any{
		"total":      result.Total,
		"successful": result.Successful,
		"failed":     result.Failed,
	})
	return result, nil
}

// Scheduler triggers the sweep on a cron schedule in-process.
type Scheduler struct {
	cron   *cron.Cron
	runner *Runner
	spec   string
}

// NewScheduler constructs a Scheduler with a standard 5-field cron spec.
func NewScheduler(runner *Runner, spec string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		spec:   spec,
	}
}

// Start registers the sweep job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.runner.Run(ctx); err != nil {
			telemetry.Error("reminders.cron", map[string]any{"error": err.Error()})
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder sweep: %w", err)
	}
	s.cron.Start()
	telemetry.Info("reminders.cron.start", map[string]any{"spec": s.spec})
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
