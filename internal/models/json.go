package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string stored as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("StringList.Scan: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, l)
}

// Theme holds the pro-only appearance settings for a public form. Colors are
// 6-hex-digit values including the leading '#'.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	CardBackground  string `json:"cardBackground"`
	TextColor       string `json:"textColor"`
	AccentColor     string `json:"accentColor"`
}

// ThemeColumn wraps an optional Theme as a nullable JSONB column.
type ThemeColumn struct {
	Theme *Theme
}

func (t ThemeColumn) Value() (driver.Value, error) {
	if t.Theme == nil {
		return nil, nil
	}
	return json.Marshal(t.Theme)
}

func (t *ThemeColumn) Scan(src any) error {
	if src == nil {
		t.Theme = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("ThemeColumn.Scan: expected []byte, got %T", src)
	}
	var theme Theme
	if err := json.Unmarshal(b, &theme); err != nil {
		return err
	}
	t.Theme = &theme
	return nil
}

func (t ThemeColumn) MarshalJSON() ([]byte, error) {
	if t.Theme == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.Theme)
}

func (t *ThemeColumn) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Theme = nil
		return nil
	}
	var theme Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return err
	}
	t.Theme = &theme
	return nil
}
