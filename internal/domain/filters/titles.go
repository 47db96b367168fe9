package filters

// TitleFilter narrows a title listing. Zero values disable a condition.
type TitleFilter struct {
	Category string `schema:"category" validate:"omitempty,slug"`
	Genre    string `schema:"genre" validate:"omitempty,slug"`
	Name     string `schema:"name" validate:"max=256"`
	Year     int    `schema:"year" validate:"omitempty,gte=0"`
}
