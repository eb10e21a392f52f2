package booking

type CreateShowcaseRequest struct {
	Token          string `json:"token" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientEmail    string `json:"client_email" binding:"required,email"`
	ClientPhone    string `json:"client_phone"`
	MeetingType    string `json:"meeting_type"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	ClientTimezone string `json:"client_timezone"`
	ClientCountry  string `json:"client_country"`
}

type CancelShowcaseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ScheduleSlot is one entry of the bookable grid for a day.
type ScheduleSlot struct {
	Time      string `json:"time"`
	Minutes   int    `json:"minutes"`
	Available bool   `json:"available"`
}

type DayScheduleResponse struct {
	Date  string         `json:"date"`
	Slots []ScheduleSlot `json:"slots"`
}
