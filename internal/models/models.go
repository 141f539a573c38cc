package models

// All returns every persisted model in migration order.
func All() []any {
	return []any{
		&Discipline{},
		&Skill{},
		&User{},
		&Project{},
		&Collaboration{},
		&Comment{},
	}
}
