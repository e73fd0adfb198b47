package notifications

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahayucraft/studio-management/internal/core/datamodel/audit"
	"github.com/rahayucraft/studio-management/internal/store"
)

// Push prepends a new unread notification. The notification list has no
// cap, unlike the activity log. Callers must persist KeyNotifications.
func Push(st *store.State, typ, message, link string) {
	n := audit.Notification{
		ID:      uuid.NewString(),
		Type:    typ,
		Message: message,
		Date:    time.Now().Format("2006-01-02"),
		Read:    false,
		Link:    link,
	}
	st.Notifications = append([]audit.Notification{n}, st.Notifications...)
}

// Record prepends an activity-log entry stamped with the acting user and
// truncates the log to its fixed bound, oldest evicted first. Callers must
// persist KeyActivityLog.
func Record(st *store.State, actor, action, details, kind string) {
	entry := audit.Entry{
		ID:      uuid.NewString(),
		Action:  action,
		User:    actor,
		Details: details,
		Date:    time.Now().Format("2006-01-02 15:04"),
		Type:    kind,
	}
	st.ActivityLog = append([]audit.Entry{entry}, st.ActivityLog...)
	if len(st.ActivityLog) > audit.ActivityLogLimit {
		st.ActivityLog = st.ActivityLog[:audit.ActivityLogLimit]
	}
}

// RecordMutation is the shared shape of CRUD audit entries.
func RecordMutation(st *store.State, actor, collection string, id int64, kind string) {
	Record(st, actor, fmt.Sprintf("%s %s", kind, collection), fmt.Sprintf("%s #%d", collection, id), kind)
}
