package models

// Rating is a user's grade for a teacher or a course. EntityID is not a
// foreign key: whether it names an existing row of EntityType is checked by
// the storage layer when the rating is written.
type Rating struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityType EntityType `gorm:"type:varchar(7);not null;uniqueIndex:idx_ratings_vote,priority:2" json:"entity_type" validate:"required,oneof=teacher course"`
	EntityID   uint       `gorm:"not null;uniqueIndex:idx_ratings_vote,priority:3" json:"entity_id" validate:"required"`
	Value      Grade      `gorm:"type:varchar(2);not null" json:"value" validate:"required,oneof=A B C D E F Fx"`
	VoterID    uint       `gorm:"not null;uniqueIndex:idx_ratings_vote,priority:1" json:"voter_id" validate:"required"`
	Voter      *User      `gorm:"foreignKey:VoterID" json:"-" validate:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}
