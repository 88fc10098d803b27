// internal/domain/models/group.go
package models

// Group is a directory group. Teams and projects share this shape; they
// differ only in the domain they were listed from.
type Group struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	DirectMembersCount int64  `json:"directMembersCount"`
}
