package product

// Requests

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=200,noAllRepeatingChars"`
	Description string   `json:"description" validate:"max=2000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	CategoryID  string   `json:"category_id" validate:"omitempty,uuid"`
	Images      []string `json:"images" validate:"max=5,dive,required"`
}

type UpdateProductRequest struct {
	ProductID   string   `json:"-"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	Images      []string `json:"images" validate:"max=5,dive,required"`
}

type FilterOpts struct {
	Category string  `json:"category"`
	PriceMin float64 `json:"priceMin" validate:"min=0"`
	PriceMax float64 `json:"priceMax" validate:"min=0"`
	Search   string  `json:"search"`
}

type SortOpts struct {
	SortBy  string `json:"sortBy" validate:"oneof=name price quantity created_at"`
	SortOpt string `json:"sortOpt" validate:"oneof=desc asc"`
}

type PageOpts struct {
	Page  uint64 `json:"page" validate:"min=1"`
	Limit uint64 `json:"limit" validate:"min=1,max=100"`
}

type SearchRequestQuery struct {
	FilterOpts FilterOpts `json:"filterOpts"`
	SortOpts   SortOpts   `json:"sortOpts"`
	PageOpts   PageOpts   `json:"pageOpts"`
}

// Responses

type SearchResponse struct {
	Results    []*Product          `json:"results"`
	Total      int                 `json:"total"`
	Page       uint64              `json:"page"`
	TotalPages int                 `json:"totalPages"`
	Query      string              `json:"query"`
	Filters    SearchResponseFacet `json:"filters"`
}

type SearchResponseFacet struct {
	Category  string  `json:"category"`
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
	SortBy    string  `json:"sortBy"`
	SortOrder string  `json:"sortOrder"`
}

// Suggestion is a single autocomplete hit, either a product or a
// category name.
type Suggestion struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
