package request

type CreateFormRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Enabled *bool   `json:"enabled,omitempty"`
	Pin     *string `json:"pin,omitempty" validate:"omitempty,max=32"`
}

type UpdateFormRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Enabled *bool   `json:"enabled,omitempty"`
	Pin     *string `json:"pin,omitempty" validate:"omitempty,max=32"`
}
