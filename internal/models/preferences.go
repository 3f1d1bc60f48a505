package models

import (
	"time"
)

// Preference is one persisted key/value entry of the preference store
type Preference struct {
	Key       string    `gorm:"primaryKey;column:pref_key;size:191" json:"key"`
	Value     string    `gorm:"type:text;column:pref_value" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name independent of gorm pluralisation
func (Preference) TableName() string {
	return "preferences"
}
