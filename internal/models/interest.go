package models

// Interest is a store-managed tag. This service reads interests but never
// creates, renames or deletes them.
type Interest struct {
	InterestID   int    `gorm:"column:interest_id;primaryKey" json:"interest_id"`
	InterestName string `gorm:"column:interest_name;not null" json:"interest_name"`
}

func (Interest) TableName() string { return "interests" }

// PostInterest associates a post with an interest. The pair is the identity;
// on update the full set for a post is replaced, never merged.
type PostInterest struct {
	PostID     int `gorm:"column:post_id;primaryKey" json:"post_id"`
	InterestID int `gorm:"column:interest_id;primaryKey" json:"interest_id"`
}

func (PostInterest) TableName() string { return "post_interests" }
