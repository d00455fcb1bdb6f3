package jobs

import (
	"freshfold/internal/database"
	"freshfold/internal/services"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAuditJobMetadata(t *testing.T) {
	job := NewStatusAuditJob(database.DB{}, services.Daily)

	assert.Equal(t, "DailyStatusAudit", job.Name())
	assert.Equal(t, services.Daily, job.Schedule())
}
