package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// createSweetRequest carries the fields of a new sweet. Price and quantity
// deliberately have no validation tags: zero is a legal value for both.
type createSweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// updateSweetRequest is a partial update: nil fields are left untouched.
type updateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
	Image    *string  `json:"image"`
}

type restockRequest struct {
	Amount int `json:"amount" validate:"required,gt=0"`
}

type messageResponse struct {
	Message string `json:"message"`
}
