package datagen

// Service is a catalog entry with a fixed monthly cost. Services are not
// independent entities in the raw export; each order row repeats the pair
// verbatim and the schema builder deduplicates them into a catalog.
type Service struct {
	Name        string
	MonthlyCost float64
}

// Catalog is the static service catalog. Costs never vary per order.
var Catalog = []Service{
	{Name: "Databases", MonthlyCost: 9.99},
	{Name: "E-Commerce", MonthlyCost: 39.99},
	{Name: "Streaming", MonthlyCost: 19.99},
	{Name: "Automation", MonthlyCost: 89.99},
	{Name: "Bi Tooling", MonthlyCost: 8.99},
	{Name: "Hardware", MonthlyCost: 12.69},
	{Name: "Custom Development", MonthlyCost: 199.99},
}

// ServiceByName looks up a catalog entry by name.
func ServiceByName(name string) (Service, bool) {
	for _, s := range Catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}
