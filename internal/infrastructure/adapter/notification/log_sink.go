package notification

import (
	"fmt"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/domain/port/notify"
)

// LogSink records enrollment notifications through the structured logger.
// It stands in for a mail gateway: the message body is fully rendered so
// swapping in a real transport is a matter of changing the delivery line.
// Send runs post-commit on the caller's goroutine and must not block, so
// delivery is dispatched asynchronously and failures are only logged.
type LogSink struct {
	logger coreport.Logger
}

// NewLogSink creates a notification sink backed by the logger
func NewLogSink(logger coreport.Logger) notify.Sink {
	return &LogSink{logger: logger}
}

// Send delivers the enrollment notification for a newly created student
func (s *LogSink) Send(parent *entity.User, student *entity.Student) {
	go func() {
		body := fmt.Sprintf(
			"Dear %s, a student account for %s has been created. Admission number: %s.",
			parent.FullName(), student.FullName(), student.AdmissionNumber,
		)

		s.logger.Info("Enrollment notification sent", map[string]any{
			"recipient":        parent.Email,
			"parent_id":        parent.ID,
			"admission_number": student.AdmissionNumber,
			"body":             body,
		})
	}()
}
