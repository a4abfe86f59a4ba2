package domain

import "time"

// ContributionKey records the outcome of a previously processed contribution
// submission, keyed by (user_id, entity_type, key). It lets clients retry
// POST /requests safely: a replay within the TTL window returns the original
// request instead of filing a second proposal.
type ContributionKey struct {
	ID         string     `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID     string     `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_contrib_user_type_key,priority:1"`
	EntityType EntityType `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_contrib_user_type_key,priority:2"`
	Key        string     `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_contrib_user_type_key,priority:3"`
	RequestID  uint64     `gorm:"not null"`
	Status     int        `gorm:"type:INTEGER NOT NULL"`
	CreatedAt  time.Time  `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time  `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (ContributionKey) TableName() string { return "contribution_keys" }
