package workspace

// NoticeLevel classifies a transient user-facing signal.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message for the cashier (the screen renders these as
// toasts). Notices are queued on the workspace and drained by the surface.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func (w *Workspace) notify(level NoticeLevel, message string) {
	w.notices = append(w.notices, Notice{Level: level, Message: message})
}

// DrainNotices returns all queued notices and empties the queue.
func (w *Workspace) DrainNotices() []Notice {
	out := w.notices
	w.notices = nil
	return out
}
