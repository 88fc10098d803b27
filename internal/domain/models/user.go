// internal/domain/models/user.go
package models

import (
	"time"
)

// User is a directory account in the organizational domain.
//
// NOTE:
//   - Users are read-only here; the directory service owns them.
//   - Suspended users are still fetched. Filtering happens in the derived view.
type User struct {
	ID                string    `json:"id"`
	PrimaryEmail      string    `json:"primaryEmail"`
	Suspended         bool      `json:"suspended"`
	CreationTime      time.Time `json:"creationTime"`
	Name              UserName  `json:"name"`
	ThumbnailPhotoURL string    `json:"thumbnailPhotoUrl,omitempty"`
}

// UserName is the display name as the directory reports it.
type UserName struct {
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
	FullName   string `json:"fullName"`
}

// DisplayName prefers the full name and falls back to given + family name,
// then to the primary email.
func (u User) DisplayName() string {
	if u.Name.FullName != "" {
		return u.Name.FullName
	}
	switch {
	case u.Name.GivenName != "" && u.Name.FamilyName != "":
		return u.Name.GivenName + " " + u.Name.FamilyName
	case u.Name.GivenName != "":
		return u.Name.GivenName
	case u.Name.FamilyName != "":
		return u.Name.FamilyName
	}
	return u.PrimaryEmail
}

// Photo is a user's profile photo. PhotoData is web-safe base64 as returned
// by the directory. A user without a photo has a nil *Photo, never an error.
type Photo struct {
	ID           string `json:"id"`
	PrimaryEmail string `json:"primaryEmail"`
	MimeType     string `json:"mimeType"`
	PhotoData    string `json:"photoData"`
	Width        int64  `json:"width"`
	Height       int64  `json:"height"`
}
