package category

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100,noAllRepeatingChars"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateCategoryRequest struct {
	CategoryID  string  `json:"-"`
	Name        *string `json:"name" validate:"omitempty,min=2,max=100,noAllRepeatingChars"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}
