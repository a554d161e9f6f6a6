package cancel_submission

// CancelSubmissionResponse результат отмены отправки.
// Cancelled=false означает, что отменять было нечего.
type CancelSubmissionResponse struct {
	Cancelled bool   `json:"cancelled"`
	Step      string `json:"step"`
}
