package dto

// SubmitTicketRequest is the public submission payload. The turnstile
// token rides along when CAPTCHA verification is enabled.
type SubmitTicketRequest struct {
	RequestorName  string `json:"requestor_name"  form:"requestor_name"`
	RequestorEmail string `json:"requestor_email" form:"requestor_email"`
	Subject        string `json:"ticket_subject"  form:"ticket_subject"`
	Message        string `json:"ticket_message"  form:"ticket_message"`
	RequestType    string `json:"request_type"    form:"request_type"`
	Impact         string `json:"ticket_impact"   form:"ticket_impact"`
	Urgency        string `json:"ticket_urgency"  form:"ticket_urgency"`
	TurnstileToken string `json:"cf_turnstile_response" form:"cf-turnstile-response"`
}

// AppendNoteRequest carries one technician note.
type AppendNoteRequest struct {
	NoteContent string `json:"note_content" form:"note_content"`
}

// UptimeKumaPayload is the monitoring heartbeat webhook body. Status is a
// pointer so a missing status is distinguishable from DOWN (0).
type UptimeKumaPayload struct {
	Heartbeat struct {
		Status *int   `json:"status"`
		Msg    string `json:"msg"`
	} `json:"heartbeat"`
	Monitor struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"monitor"`
}
