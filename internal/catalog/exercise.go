package catalog

// Exercise is one record of the static exercise dataset. The catalog is
// read-only after the initial load.
type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Target           string   `json:"target"`
	Equipment        string   `json:"equipment"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	GifURL           string   `json:"gifUrl"`
	LocalGif         string   `json:"localGif"`
	LocalPng         string   `json:"localPng"`
}

// FilterParams narrow the catalog: all facets are AND-ed together, the
// search term is a case-insensitive substring match on the exercise name.
type FilterParams struct {
	Search    string
	BodyPart  string
	Equipment string
	Target    string
}

// Facets are the distinct categorical values of the loaded catalog,
// used to populate the filter dropdowns.
type Facets struct {
	BodyParts  []string `json:"bodyParts"`
	Equipments []string `json:"equipments"`
	Targets    []string `json:"targets"`
}
