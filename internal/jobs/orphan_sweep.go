// File: internal/jobs/orphan_sweep.go
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PhangZT0803/EcoTrip/internal/config"
	"github.com/PhangZT0803/EcoTrip/internal/filestorage"
	"github.com/PhangZT0803/EcoTrip/internal/submission"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// submissionPrefix is the object-store prefix every submission photo lives
// under.
const submissionPrefix = "submissions/"

// OrphanSweepJob deletes submission photos that no submission document
// references. Such objects exist when a submission failed between the photo
// upload and the document write and the compensating delete also failed.
type OrphanSweepJob struct {
	submissionRepo submission.Repository
	store          filestorage.ObjectStore
	logger         *zap.Logger
	cfg            *config.Config
	cronScheduler  *cron.Cron
}

// NewOrphanSweepJob creates a new OrphanSweepJob.
func NewOrphanSweepJob(
	submissionRepo submission.Repository,
	store filestorage.ObjectStore,
	logger *zap.Logger,
	cfg *config.Config,
) *OrphanSweepJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &OrphanSweepJob{
		submissionRepo: submissionRepo,
		store:          store,
		logger:         logger.Named("OrphanSweepJob"),
		cfg:            cfg,
		cronScheduler:  scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *OrphanSweepJob) SetupAndStart() error {
	jobSpec := j.cfg.OrphanSweepSchedule
	if jobSpec == "" {
		j.logger.Warn("Orphan sweep schedule not defined (ORPHAN_SWEEP_SCHEDULE). Job will not run.")
		return nil // Not a fatal error, just won't run
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule orphan sweep job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Orphan sweep job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *OrphanSweepJob) runJob() {
	j.logger.Info("Starting orphan sweep run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	swept, err := j.Sweep(ctx)
	if err != nil {
		j.logger.Error("Orphan sweep run failed", zap.Error(err))
	} else {
		j.logger.Info("Orphan sweep run completed", zap.Int("objects_deleted", swept))
	}
}

// Sweep deletes unreferenced submission objects older than the grace period
// and returns how many were deleted. The grace period keeps the sweep from
// racing an in-flight submission whose document write has not landed yet.
func (j *OrphanSweepJob) Sweep(ctx context.Context) (int, error) {
	objects, err := j.store.List(ctx, submissionPrefix)
	if err != nil {
		return 0, fmt.Errorf("listing submission objects: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(j.cfg.OrphanSweepGraceHours) * time.Hour)
	swept := 0
	for _, obj := range objects {
		if !strings.HasPrefix(obj.Key, submissionPrefix) || obj.Created.After(cutoff) {
			continue
		}

		url := j.store.PublicURL(obj.Key)
		referenced, err := j.submissionRepo.ExistsByPhotoURL(ctx, url)
		if err != nil {
			// Never delete on an inconclusive lookup; the next run retries.
			j.logger.Warn("Could not check references for object, skipping",
				zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		if referenced {
			continue
		}

		if err := j.store.Delete(ctx, obj.Key); err != nil {
			j.logger.Warn("Failed to delete orphaned object",
				zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		j.logger.Info("Deleted orphaned submission object", zap.String("key", obj.Key))
		swept++
	}
	return swept, nil
}

// Stop gracefully stops the cron scheduler.
func (j *OrphanSweepJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping orphan sweep job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Orphan sweep job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Orphan sweep job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
