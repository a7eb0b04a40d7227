package domain

// Product is one row of the catalog table. The ID is an opaque short token
// and is always treated as text, even when it looks numeric.
type Product struct {
	ID        string  `csv:"id" json:"id" form:"id"`
	Name      string  `csv:"name" json:"name" form:"name"`
	Price     float64 `csv:"price" json:"price" form:"price"`
	ImageName string  `csv:"image_name" json:"image_name" form:"image_name"` // optional, empty when no image was uploaded
}
