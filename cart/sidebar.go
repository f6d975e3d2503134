package cart

import (
	"sync"
	"time"
)

// Sidebar tracks whether the cart drawer is open. Opening it locks page
// scrolling; closing it releases the lock.
type Sidebar struct {
	open bool
}

// Toggle flips the drawer and returns whether it is now open
func (s *Sidebar) Toggle() bool {
	s.open = !s.open
	return s.open
}

func (s *Sidebar) Open() bool { return s.open }

// ScrollLocked reports whether page scrolling is suppressed
func (s *Sidebar) ScrollLocked() bool { return s.open }

const (
	// ToastVisible is how long a toast stays fully shown
	ToastVisible = 2 * time.Second
	// ToastFade is the fade-out before the toast is removed
	ToastFade = 300 * time.Millisecond
)

// ToastState is the lifecycle stage of a notification
type ToastState int

const (
	ToastShown ToastState = iota
	ToastFading
)

// Toast is a short-lived notification
type Toast struct {
	ID      int
	Message string
	State   ToastState
}

// AfterFunc schedules f to run after d
type AfterFunc func(d time.Duration, f func())

// Toaster shows notifications that dismiss themselves
type Toaster struct {
	mu     sync.Mutex
	after  AfterFunc
	nextID int
	toasts map[int]*Toast
}

// NewToaster uses after to schedule dismissal; nil means time.AfterFunc
func NewToaster(after AfterFunc) *Toaster {
	if after == nil {
		after = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	return &Toaster{after: after, toasts: make(map[int]*Toast)}
}

// Show displays message, fades it after ToastVisible and removes it
// ToastFade later
func (t *Toaster) Show(message string) int {
	t.mu.Lock()
	t.nextID++
	toast := &Toast{ID: t.nextID, Message: message, State: ToastShown}
	t.toasts[toast.ID] = toast
	t.mu.Unlock()

	t.after(ToastVisible, func() {
		t.setState(toast.ID, ToastFading)
		t.after(ToastFade, func() {
			t.mu.Lock()
			delete(t.toasts, toast.ID)
			t.mu.Unlock()
		})
	})
	return toast.ID
}

// Active returns the toasts still on screen, oldest first
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Toast, 0, len(t.toasts))
	for id := 1; id <= t.nextID; id++ {
		if toast, ok := t.toasts[id]; ok {
			out = append(out, *toast)
		}
	}
	return out
}

func (t *Toaster) setState(id int, state ToastState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if toast, ok := t.toasts[id]; ok {
		toast.State = state
	}
}
