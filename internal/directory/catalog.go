package directory

// Category is one service type offered on the marketplace.
type Category struct {
	Name  string   `json:"name"`
	Tasks []string `json:"tasks"`
}

var categories = []Category{
	{Name: "Plumber", Tasks: []string{"Pipe Repair", "Leak Fixing", "Bathroom Fitting"}},
	{Name: "Electrician", Tasks: []string{"Wiring", "Fan Installation", "Light Fitting"}},
	{Name: "Carpenter", Tasks: []string{"Furniture Assembly", "Door Repair", "Custom Work"}},
	{Name: "Mason", Tasks: []string{"Brickwork", "Plastering", "Tiling"}},
	{Name: "AC & Repair", Tasks: []string{"AC Installation", "Repair", "Gas Charging"}},
	{Name: "General", Tasks: []string{"Furniture Assembly", "TV Mounting", "Painting"}},
}

// Islamabad sectors served.
var areas = []string{
	"F-6 (Super Market)", "F-7 (Jinnah Super)", "F-8", "F-10", "F-11",
	"G-6", "G-9", "G-10", "G-11", "I-8",
}

// Catalog is what the front end needs to build the search form.
type Catalog struct {
	Categories []Category `json:"categories"`
	Areas      []string   `json:"areas"`
}

func GetCatalog() Catalog {
	out := Catalog{
		Categories: make([]Category, len(categories)),
		Areas:      append([]string(nil), areas...),
	}
	for i, c := range categories {
		out.Categories[i] = Category{Name: c.Name, Tasks: append([]string(nil), c.Tasks...)}
	}
	return out
}

func IsServiceType(name string) bool {
	for _, c := range categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

func IsArea(name string) bool {
	for _, a := range areas {
		if a == name {
			return true
		}
	}
	return false
}
