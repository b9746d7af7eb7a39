package scheduler

import (
	"github.com/hibiken/asynq"
)

const TaskArchiveExpiredProposals = "scheduling:archive_expired"

const TaskCalloutFeeReminder = "callouts:fee_reminder"

// Maintenance tasks carry no payload; the handlers scan the database for
// whatever is due at execution time.

func NewArchiveExpiredProposalsTask() *asynq.Task {
	return asynq.NewTask(TaskArchiveExpiredProposals, nil)
}

func NewCalloutFeeReminderTask() *asynq.Task {
	return asynq.NewTask(TaskCalloutFeeReminder, nil)
}
