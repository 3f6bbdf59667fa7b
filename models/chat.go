package models

import "time"

// ChatMessage is a private message between two staff members.
type ChatMessage struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	SenderID   string    `json:"sender_id" gorm:"column:sender_id;not null"`
	ReceiverID string    `json:"receiver_id" gorm:"column:receiver_id;not null"`
	Content    string    `json:"content" gorm:"not null"`
	IsRead     bool      `json:"is_read" gorm:"column:is_read;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

// GroupMessage is a message to the shared staff room.
type GroupMessage struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	SenderID  string    `json:"sender_id" gorm:"column:sender_id;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
