package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// createThreatRequest binds from JSON or from multipart form fields; photo
// files ride alongside in the multipart body.
type createThreatRequest struct {
	Type        string  `json:"type"        form:"type"        validate:"required,oneof=logging pollution development wildlife other"`
	Title       string  `json:"title"       form:"title"       validate:"required,min=5"`
	Description string  `json:"description" form:"description" validate:"required,min=10"`
	Latitude    float64 `json:"latitude"    form:"latitude"    validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude"   form:"longitude"   validate:"gte=-180,lte=180"`
	Priority    string  `json:"priority"    form:"priority"    validate:"omitempty,oneof=low medium high"`
	Sector      string  `json:"sector"      form:"sector"`
}

// updateThreatRequest is a merge-patch; absent fields stay untouched.
type updateThreatRequest struct {
	Status      *string `json:"status"      validate:"omitempty,oneof=pending verified rejected resolved"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Title       *string `json:"title"       validate:"omitempty,min=5"`
	Description *string `json:"description" validate:"omitempty,min=10"`
	Sector      *string `json:"sector"`
}

type listThreatsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending verified rejected resolved"`
	Type   string `query:"type"   validate:"omitempty,oneof=logging pollution development wildlife other"`
	UserID string `query:"userId"`
}

type markReadResponse struct {
	Success bool `json:"success"`
}
