package models

import "strings"

// User is the profile returned by the murojaah backend for the logged in account
type User struct {
	ID                   int64  `json:"id"`
	Nama                 string `json:"nama"`
	NIM                  string `json:"nim,omitempty"`
	Email                string `json:"email,omitempty"`
	Gender               string `json:"gender"`
	Jurusan              string `json:"jurusan,omitempty"`
	MentorID             int64  `json:"mentor_id,omitempty"`
	MahasantriCount      int    `json:"mahasantri_count,omitempty"`
	UserType             string `json:"user_type"`
	IsDataMurojaahFilled bool   `json:"is_data_murojaah_filled"`
}

// Initials returns up to two upper-case initials of the user's name
func (u User) Initials() string {
	var out []rune
	start := true
	for _, r := range u.Nama {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			if len(out) == 2 {
				break
			}
			start = false
		}
	}
	return strings.ToUpper(string(out))
}
