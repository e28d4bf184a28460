package request

type FindProducts struct {
	Search   string `validate:"max=100" json:"search"`
	Category string `validate:"max=50"  json:"category"`
}

type FindProductById struct {
	ID string `validate:"required" json:"id"`
}
