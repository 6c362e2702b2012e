package project

import "time"

// Project is one editable draft. Its timeline content lives in the snapshot
// tables and is loaded and saved wholesale.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
