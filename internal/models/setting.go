package models

import (
	"encoding/json"
	"time"
)

// Setting is one keyed site-settings document (banner, ebook promo).
// The value is stored as an opaque JSON document.
type Setting struct {
	Key       string          `json:"key" db:"key"`
	Value     json.RawMessage `json:"value" db:"value"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Known setting keys
const (
	SettingBanner = "banner"
	SettingEbook  = "ebook"
)

// ValidSettingKeys defines the setting documents the admin panel manages
var ValidSettingKeys = map[string]bool{
	SettingBanner: true,
	SettingEbook:  true,
}
