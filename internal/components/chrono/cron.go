package chrono

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vlrscraper/internal/components/telemetry"

	"github.com/robfig/cron/v3"
)

// Scheduler runs jobs on cron specs, evaluated in UTC. A job still running
// when its next tick comes skips that tick, a panicking job is reported
// instead of taking the process down.
type Scheduler struct {
	cron *cron.Cron
	tel  telemetry.API
}

func NewScheduler(tel telemetry.API) Scheduler {
	logger := cronLogger{tel: tel}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Start()
	return Scheduler{cron: c, tel: tel}
}

// Schedule adds a job running on a standard 5 field spec or a descriptor
// like "@every 6h", `name` identifies the job in reports.
func (s Scheduler) Schedule(name, spec string, job func()) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.cron.Schedule(schedule, cron.FuncJob(job))
	s.tel.ReportDebug("scheduled", name, spec, schedule.Next(time.Now()).Format(time.RFC3339))
	return nil
}

// Stop halts the scheduler, the returned context is done once running jobs
// return.
func (s Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger routes robfig/cron's logr style logging into telemetry.
type cronLogger struct {
	tel telemetry.API
}

func keyValues(kv []any) []any {
	out := make([]any, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
	}
	return out
}

func (l cronLogger) Info(msg string, kv ...any) {
	l.tel.ReportDebug("cron "+strings.ToLower(msg), keyValues(kv)...)
}

func (l cronLogger) Error(err error, msg string, kv ...any) {
	params := append([]any{fmt.Errorf("%s: %w", msg, err)}, keyValues(kv)...)
	l.tel.ReportBroken("cron", params...)
}
