package notify

import (
	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// Sink delivers the enrollment notification to a parent.
// Send is fire-and-forget: it is invoked at most once per successful
// enrollment, strictly after the enclosing unit of work commits, and
// never for a rolled-back enrollment. Delivery retry is out of scope.
type Sink interface {
	Send(parent *entity.User, student *entity.Student)
}
