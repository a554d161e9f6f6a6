package goto_step

// Действия навигации по шагам мастера
const (
	ActionAdvance = "advance"
	ActionBack    = "back"
	ActionJump    = "jump"
)

// GotoStepRequest запрос на навигацию по шагам мастера.
// Target обязателен только для action=jump.
type GotoStepRequest struct {
	Action string `json:"action"` // advance | back | jump
	Target string `json:"target,omitempty"`
}
