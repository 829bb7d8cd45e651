package telegram

import (
	"strconv"
	"time"
)

// VerifiedIdentity is the trusted result of a successful validation.
type VerifiedIdentity struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	PhotoURL  string
	AuthDate  time.Time
}

// Info returns the profile blob stored with a linked identity. Absent
// optional fields are left out.
func (v VerifiedIdentity) Info() map[string]string {
	info := map[string]string{
		FieldID:       v.ID,
		FieldAuthDate: strconv.FormatInt(v.AuthDate.Unix(), 10),
	}
	for k, val := range map[string]string{
		FieldUsername:  v.Username,
		FieldFirstName: v.FirstName,
		FieldLastName:  v.LastName,
		FieldPhotoURL:  v.PhotoURL,
	} {
		if val != "" {
			info[k] = val
		}
	}
	return info
}

// DisplayName prefers @username, then the full name, then the id.
func (v VerifiedIdentity) DisplayName() string {
	return displayName(v.Username, v.FirstName, v.LastName, v.ID)
}

// DisplayNameFromInfo applies the DisplayName rules to a stored info blob,
// falling back to uid.
func DisplayNameFromInfo(info map[string]string, uid string) string {
	return displayName(info[FieldUsername], info[FieldFirstName], info[FieldLastName], uid)
}

func displayName(username, first, last, id string) string {
	switch {
	case username != "":
		return "@" + username
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	default:
		return id
	}
}
