// Package registry holds the fixed set of scoring categories. Every weight and
// score mapping in the system must cover exactly this key set; other packages
// import it rather than redefining keys.
package registry

// Category keys, stable across persisted data.
const (
	PriceFit        = "priceFit"
	ResalePotential = "resalePotential"
	Condition       = "condition"
	Layout          = "layout"
	Location        = "location"
	Schools         = "schools"
	Commute         = "commute"
	EmotionalPull   = "emotionalPull"
)

// Category is one scoring criterion with its display label and enclosing group.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Group string `json:"group"`
}

// Group is a display grouping of categories.
type Group struct {
	Title      string     `json:"title"`
	Categories []Category `json:"categories"`
}

var groups = []Group{
	{
		Title: "Financial",
		Categories: []Category{
			{Key: PriceFit, Label: "Price Fit", Group: "Financial"},
			{Key: ResalePotential, Label: "Resale Potential", Group: "Financial"},
		},
	},
	{
		Title: "Home Quality",
		Categories: []Category{
			{Key: Condition, Label: "Condition", Group: "Home Quality"},
			{Key: Layout, Label: "Layout", Group: "Home Quality"},
		},
	},
	{
		Title: "Lifestyle",
		Categories: []Category{
			{Key: Location, Label: "Location", Group: "Lifestyle"},
			{Key: Schools, Label: "Schools", Group: "Lifestyle"},
			{Key: Commute, Label: "Commute", Group: "Lifestyle"},
		},
	},
	{
		Title: "Emotional",
		Categories: []Category{
			{Key: EmotionalPull, Label: "Emotional Pull", Group: "Emotional"},
		},
	},
}

var flat []Category
var keys []string
var labels map[string]string

func init() {
	labels = make(map[string]string)
	for _, g := range groups {
		for _, c := range g.Categories {
			flat = append(flat, c)
			keys = append(keys, c.Key)
			labels[c.Key] = c.Label
		}
	}
}

// Groups returns the display groups in canonical order.
func Groups() []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	return out
}

// Categories returns all categories in canonical order.
func Categories() []Category {
	out := make([]Category, len(flat))
	copy(out, flat)
	return out
}

// Keys returns the ordered category key list. The last key in this order
// absorbs rounding residue during weight normalization.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Count returns the number of categories.
func Count() int { return len(keys) }

// Label returns the display label for a key, or the key itself if unknown.
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

// Contains reports whether key is a registered category.
func Contains(key string) bool {
	_, ok := labels[key]
	return ok
}
