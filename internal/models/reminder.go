package models

// ReminderItem is one maintenance position mentioned in a reminder
// mail.
type ReminderItem struct {
	DisplayName string `json:"display_name"`
	Remaining   string `json:"remaining"`
}

// ReminderMessage travels from the reminder scheduler through RabbitMQ
// to the sender worker. One message covers one car and one severity.
type ReminderMessage struct {
	Email    string         `json:"email"`
	Username string         `json:"username"`
	CarName  string         `json:"car_name"`
	Items    []ReminderItem `json:"items"`
}
