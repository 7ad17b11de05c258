package comment

import validation "github.com/go-ozzo/ozzo-validation/v4"

type CommentForm struct {
	Text string `form:"text" json:"text"`
}

func (f CommentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Text, validation.Required),
	)
}
