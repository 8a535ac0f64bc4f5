package domain

import "time"

type Post struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	PicturePath     string    `json:"picturePath"`
	UserPicturePath string    `json:"userPicturePath"`
	Likes           []string  `json:"likes"`
	CreatedAt       time.Time `json:"createdAt"`
}

// LikedBy indica si el usuario ya marcó el post.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
