package jobs

import (
	"context"
	"freshfold/internal/database"
	. "freshfold/internal/models"
	"freshfold/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// StatusAuditJob scans for orders whose denormalized status column disagrees
// with their latest history row. Drift means a past write skipped the
// transactional update path; the job reports it and leaves the rows alone.
type StatusAuditJob struct {
	db       database.DB
	log      logger.Logger
	schedule services.Schedule
}

type statusDrift struct {
	RequestID     string        `gorm:"column:request_id"`
	RowStatus     RequestStatus `gorm:"column:row_status"`
	HistoryStatus RequestStatus `gorm:"column:history_status"`
}

func NewStatusAuditJob(db database.DB, schedule services.Schedule) *StatusAuditJob {
	log := logger.New("statusAuditJob")
	log.Info("Creating new status audit job", "schedule", schedule)

	return &StatusAuditJob{
		db:       db,
		log:      log,
		schedule: schedule,
	}
}

func (j *StatusAuditJob) Name() string {
	return "DailyStatusAudit"
}

func (j *StatusAuditJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting status history drift audit")

	var drifts []statusDrift
	err := j.db.SQLWithContext(ctx).Raw(`
		SELECT cr.id AS request_id, cr.status AS row_status, latest.status AS history_status
		FROM cleaning_requests cr
		JOIN (
			SELECT DISTINCT ON (request_id) request_id, status
			FROM status_histories
			WHERE deleted_at IS NULL
			ORDER BY request_id, created_at DESC
		) latest ON latest.request_id = cr.id
		WHERE cr.deleted_at IS NULL AND cr.status <> latest.status
	`).Scan(&drifts).Error
	if err != nil {
		return log.Err("status audit query failed", err)
	}

	if len(drifts) == 0 {
		log.Info("Status audit complete, no drift found")
		return nil
	}

	for _, drift := range drifts {
		log.Warn(
			"Order status disagrees with latest history row",
			"requestID", drift.RequestID,
			"rowStatus", drift.RowStatus,
			"historyStatus", drift.HistoryStatus,
		)
	}

	log.Warn("Status audit complete", "driftCount", len(drifts))
	return nil
}

func (j *StatusAuditJob) Schedule() services.Schedule {
	return j.schedule
}
