package models

// Contact fields reported in ContactInfo.MissingFields.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

// ContactInfo is the best-guess contact block recognized in a resume.
// A field appears in MissingFields exactly when its value is empty.
type ContactInfo struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	MissingFields []string `json:"missing_fields"`
}

type ParseResumeResponse struct {
	ContactInfo
	RawTextSnippet string `json:"raw_text_snippet"`
}
