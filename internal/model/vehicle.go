package model

// Vehicle is the managed resource.
type Vehicle struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"nome" db:"name"`
	Brand string `json:"marca" db:"brand"`
	Year  int    `json:"ano" db:"year"`
}

// VehicleRequest is the body of POST /veiculos and PUT /veiculos/{id}.
type VehicleRequest struct {
	Name  string `json:"nome" example:"Civic"`
	Brand string `json:"marca" example:"Honda"`
	Year  int    `json:"ano" example:"2020"`
}

// Apply copies every replaceable field of req onto v.
func (v *Vehicle) Apply(req VehicleRequest) {
	v.Name = req.Name
	v.Brand = req.Brand
	v.Year = req.Year
}

// ValidationErrors is the 400 response body.
type ValidationErrors struct {
	Messages []string `json:"mensagens"`
}
