package consultation

type CreateConsultationRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required,email"`
	ClientPhone string `json:"client_phone"`
	Topic       string `json:"topic"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
}
