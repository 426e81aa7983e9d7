package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind classifies why a task notification is sent.
type Kind string

const (
	KindAssigned      Kind = "assigned"
	KindReassigned    Kind = "reassigned"
	KindStatusChanged Kind = "status_changed"
	KindCompleted     Kind = "completed"
)

// Notification is the message handed from the request path to the delivery worker.
type Notification struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`
	TaskTitle      string    `json:"task_title"`
	ProjectName    string    `json:"project_name"`
	ActorName      string    `json:"actor_name"`
	NewStatus      string    `json:"new_status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// New fills in the ID and timestamp of a notification.
func New(kind Kind) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

func (n Notification) Encode() ([]byte, error) {
	return json.Marshal(n)
}

func Decode(data []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	return n, nil
}

// Subject renders the email subject line.
func (n Notification) Subject() string {
	switch n.Kind {
	case KindAssigned:
		return fmt.Sprintf("New Task Assignment: %s", n.TaskTitle)
	case KindReassigned:
		return fmt.Sprintf("Task Reassigned to You: %s", n.TaskTitle)
	case KindCompleted:
		return fmt.Sprintf("Task Completed: %s", n.TaskTitle)
	case KindStatusChanged:
		return fmt.Sprintf("Task Updated: %s", n.TaskTitle)
	default:
		return n.TaskTitle
	}
}

// Body renders the plain-text email body.
func (n Notification) Body() string {
	greeting := fmt.Sprintf("Hello %s,\n\n", n.RecipientName)
	var line string
	switch n.Kind {
	case KindAssigned:
		line = fmt.Sprintf("%s assigned you the task %q in project %q.", n.ActorName, n.TaskTitle, n.ProjectName)
	case KindReassigned:
		line = fmt.Sprintf("%s reassigned the task %q in project %q to you.", n.ActorName, n.TaskTitle, n.ProjectName)
	case KindCompleted:
		line = fmt.Sprintf("%s marked the task %q in project %q as completed.", n.ActorName, n.TaskTitle, n.ProjectName)
	default:
		line = fmt.Sprintf("%s changed the status of %q in project %q to %s.", n.ActorName, n.TaskTitle, n.ProjectName, n.NewStatus)
	}
	return greeting + line + "\n\n-- Project Management Dashboard\n"
}
