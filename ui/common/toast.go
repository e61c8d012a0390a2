package common

import (
	"time"

	"github.com/deemkeen/herald/stream"
)

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

type Toast struct {
	Kind    ToastKind
	Title   string
	Message string
	At      time.Time
}

// Toaster is the notification service shared by all screens of a session.
// Screens call Success and Error from their Update; the shell listens to
// the feed and renders the latest toast.
type Toaster struct {
	feed *stream.Feed[Toast]
}

func NewToaster() *Toaster {
	return &Toaster{feed: stream.NewFeed[Toast]()}
}

func (t *Toaster) Success(title, message string) {
	t.feed.Publish(Toast{Kind: ToastSuccess, Title: title, Message: message, At: time.Now()})
}

func (t *Toaster) Error(title, message string) {
	t.feed.Publish(Toast{Kind: ToastError, Title: title, Message: message, At: time.Now()})
}

func (t *Toaster) Subscribe() *stream.Subscription[Toast] {
	return t.feed.Subscribe(8)
}

func (t *Toaster) Close() {
	t.feed.Close()
}

// Render returns the one-line form of the toast.
func (t Toast) Render() string {
	text := t.Message
	if t.Title != "" {
		text = t.Title + ": " + t.Message
	}
	if t.Kind == ToastError {
		return ListErrorStyle.Render("✗ " + text)
	}
	return ListStatusStyle.Render("✓ " + text)
}
