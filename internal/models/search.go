package models

// ProductSuggestion is the slim product view returned by search suggestions.
type ProductSuggestion struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// CategorySuggestion is the slim category view returned by search suggestions.
type CategorySuggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SearchSuggestions bundles the top product and category matches for a query.
type SearchSuggestions struct {
	Products   []ProductSuggestion  `json:"products"`
	Categories []CategorySuggestion `json:"categories"`
}
