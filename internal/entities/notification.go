package entities

import "time"

// NotificationKind distinguishes toast styles.
type NotificationKind string

const (
	NotifySuccess  NotificationKind = "success"
	NotifyInfo     NotificationKind = "info"
	NotifyReminder NotificationKind = "reminder"
)

// Notification is a toast-style event published for the UI shell.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	SlotID  string           `json:"slot_id,omitempty"`
	At      time.Time        `json:"at"`
}
