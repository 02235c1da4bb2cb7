package services

import "sync"

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a short, non-blocking message for the user (a toast on the page).
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

type Notifier interface {
	Notify(n Notice)
}

// NoticeRecorder collects notices raised while serving one request.
type NoticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *NoticeRecorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *NoticeRecorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice, or nil.
func (r *NoticeRecorder) Last() *Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return nil
	}
	n := r.notices[len(r.notices)-1]
	return &n
}

func notifyError(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notice{Kind: NoticeError, Message: msg})
	}
}

func notifySuccess(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notice{Kind: NoticeSuccess, Message: msg})
	}
}
