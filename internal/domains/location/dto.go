package location

import validation "github.com/go-ozzo/ozzo-validation/v4"

type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

func (r CreateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 256)),
	)
}

type UpdateLocationRequest struct {
	Name        *string `json:"name"`
	IsPublished *bool   `json:"is_published"`
}

func (r UpdateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 256)),
	)
}

func (r UpdateLocationRequest) Apply(l *Location) {
	if r.Name != nil {
		l.Name = *r.Name
	}
	if r.IsPublished != nil {
		l.IsPublished = *r.IsPublished
	}
}
