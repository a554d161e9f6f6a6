package domain

// WizardStep is one step of the booking wizard
type WizardStep string

const (
	StepService  WizardStep = "service"
	StepPet      WizardStep = "pet"
	StepDatetime WizardStep = "datetime"
	StepConfirm  WizardStep = "confirm"
	StepSuccess  WizardStep = "success"
)

// stepOrder positions steps for forward/backward comparison
var stepOrder = map[WizardStep]int{
	StepService:  0,
	StepPet:      1,
	StepDatetime: 2,
	StepConfirm:  3,
	StepSuccess:  4,
}

// IsValid returns true if the step belongs to the closed set
func (s WizardStep) IsValid() bool {
	_, ok := stepOrder[s]
	return ok
}

// Order returns the position of the step in the wizard flow
func (s WizardStep) Order() int {
	return stepOrder[s]
}

// IsTerminal returns true for the one-way success step
func (s WizardStep) IsTerminal() bool {
	return s == StepSuccess
}

// IsBefore returns true if s comes earlier in the flow than other
func (s WizardStep) IsBefore(other WizardStep) bool {
	return s.Order() < other.Order()
}
