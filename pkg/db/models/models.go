package models

// All returns every persisted model in foreign-key order, used by the
// sqlite dev auto-migration path.
func All() []any {
	return []any{
		&Restaurant{},
		&User{},
		&Category{},
		&MenuItem{},
		&Table{},
		&Inventory{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Transaction{},
	}
}
