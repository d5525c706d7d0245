package extract

import "strings"

// categoryBuckets are evaluated in order; the first bucket with a keyword
// inside the merchant name wins.
var categoryBuckets = []struct {
	category Category
	words    []string
}{
	{Restaurant, []string{"restaurant", "cafe", "bistro", "grill", "diner", "pizza", "burger", "sushi", "bar"}},
	{HotelLodging, []string{"hotel", "inn", "resort", "lodge", "motel"}},
	{CarRelated, []string{"gas", "fuel", "station", "shell", "bp", "exxon", "parking", "garage"}},
	{Groceries, []string{"market", "grocery", "supermarket", "walmart", "target", "costco"}},
	{Transportation, []string{"taxi", "uber", "lyft", "bus", "train", "airline", "airport"}},
}

// Categorize maps a merchant name to a spending category.
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, b := range categoryBuckets {
		for _, w := range b.words {
			if strings.Contains(lower, w) {
				return b.category
			}
		}
	}
	return Other
}
