package httpdto

// CreateApplicationForm binds the multipart text fields of a submission.
// applicationAmount arrives as a string so that "0" still counts as
// supplied; it is parsed in the handler.
type CreateApplicationForm struct {
	Name              string `form:"name" binding:"required"`
	Mobile            string `form:"mobile" binding:"required"`
	Email             string `form:"email" binding:"required"`
	Gender            string `form:"gender" binding:"required"`
	ApplicationAmount string `form:"applicationAmount" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
