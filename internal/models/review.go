package models

import "time"

type Review struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	Location      string    `json:"location" db:"location"`
	ReviewText    string    `json:"review_text" db:"review_text"`
	Rating        int       `json:"rating" db:"rating"`
	VisitedDate   string    `json:"visited_date" db:"visited_date"`
	ReviewImageID *string   `json:"review_img_id" db:"review_image_id"`
	CreatedDate   time.Time `json:"created_date" db:"created_date"`
}

// Dining halls a review can be written for.
var Locations = []string{"hampshire", "franklin", "berkshire", "worcester"}

// IndexFeed is the pseudo-location serving the site-wide front page feed.
const IndexFeed = "index"

const (
	MinRating = 1
	MaxRating = 5
)

func IsKnownLocation(name string) bool {
	for _, l := range Locations {
		if l == name {
			return true
		}
	}
	return false
}

// UpdateResult and DeleteResult keep the response shape clients of the
// original document store already understand.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
