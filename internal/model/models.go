package model

// All lists every persisted model in dependency order, for schema creation.
func All() []interface{} {
	return []interface{}{
		&User{},
		&ChecklistItem{},
		&CaptionEntry{},
		&Project{},
		&Report{},
		&Visit{},
	}
}
