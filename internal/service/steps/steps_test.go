package steps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
)

// fullSelection выбор, заполненный до шага confirm в режиме точного слота
func fullSelection() *domain.Selection {
	sel := domain.NewSelection()
	sel.ToggleService(1)
	sel.SetPet(10)
	sel.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	sel.SetTimeSlot("14:00")
	return sel
}

// preferenceSelection выбор в режиме окна предпочтений (без точной даты)
func preferenceSelection() *domain.Selection {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	sel := domain.NewSelection()
	sel.ToggleService(1)
	sel.SetPet(10)
	sel.SetPreference(now.AddDate(0, 0, 2), now.AddDate(0, 0, 5), domain.TimeOfDayMorning, now)
	return sel
}

func TestController_Advance(t *testing.T) {
	t.Run("blocked on empty step", func(t *testing.T) {
		c := NewController(false)
		sel := domain.NewSelection()

		assert.False(t, c.Advance(sel))
		assert.Equal(t, domain.StepService, c.Current())
	})

	t.Run("walks exact slot flow", func(t *testing.T) {
		c := NewController(false)
		sel := fullSelection()

		assert.True(t, c.Advance(sel))
		assert.Equal(t, domain.StepPet, c.Current())
		assert.True(t, c.Advance(sel))
		assert.Equal(t, domain.StepDatetime, c.Current())
		assert.True(t, c.Advance(sel))
		assert.Equal(t, domain.StepConfirm, c.Current())

		// Из confirm дальше только через успешную отправку
		assert.False(t, c.Advance(sel))
		assert.Equal(t, domain.StepConfirm, c.Current())
	})

	t.Run("preference mode skips datetime", func(t *testing.T) {
		c := NewController(false)
		sel := preferenceSelection()

		assert.True(t, c.Advance(sel))
		assert.Equal(t, domain.StepPet, c.Current())
		assert.True(t, c.Advance(sel))
		assert.Equal(t, domain.StepConfirm, c.Current())
	})
}

func TestController_Back(t *testing.T) {
	t.Run("from confirm in exact slot mode", func(t *testing.T) {
		c := NewController(false)
		sel := fullSelection()
		c.Advance(sel)
		c.Advance(sel)
		c.Advance(sel)

		assert.True(t, c.Back(sel))
		assert.Equal(t, domain.StepDatetime, c.Current())
	})

	t.Run("from confirm in preference mode", func(t *testing.T) {
		c := NewController(false)
		sel := preferenceSelection()
		c.Advance(sel)
		c.Advance(sel)

		// datetime не проходился — назад сразу к pet
		assert.True(t, c.Back(sel))
		assert.Equal(t, domain.StepPet, c.Current())
	})

	t.Run("blocked on first step", func(t *testing.T) {
		c := NewController(false)
		assert.False(t, c.Back(domain.NewSelection()))
	})
}

func TestController_Jump(t *testing.T) {
	t.Run("backward always allowed", func(t *testing.T) {
		c := NewController(false)
		sel := fullSelection()
		c.Advance(sel)
		c.Advance(sel)

		got := c.Jump(domain.StepService, sel)
		assert.Equal(t, domain.StepService, got)
	})

	t.Run("forward clamped to furthest reachable", func(t *testing.T) {
		c := NewController(false)
		sel := domain.NewSelection()
		sel.ToggleService(1)

		// Питомец не выбран: дальше pet прыгнуть нельзя
		got := c.Jump(domain.StepConfirm, sel)
		assert.Equal(t, domain.StepPet, got)
	})

	t.Run("forward allowed when steps are filled", func(t *testing.T) {
		c := NewController(false)
		got := c.Jump(domain.StepConfirm, fullSelection())
		assert.Equal(t, domain.StepConfirm, got)
	})

	t.Run("success unreachable via jump", func(t *testing.T) {
		c := NewController(false)
		got := c.Jump(domain.StepSuccess, fullSelection())
		assert.Equal(t, domain.StepService, got)
	})
}

func TestController_MarkSuccess(t *testing.T) {
	c := NewController(false)
	sel := fullSelection()
	c.Advance(sel)
	c.Advance(sel)
	c.Advance(sel)

	c.MarkSuccess()
	assert.Equal(t, domain.StepSuccess, c.Current())

	// Терминальный шаг односторонний: никакая навигация не выводит из него
	assert.False(t, c.Advance(sel))
	assert.False(t, c.Back(sel))
	assert.Equal(t, domain.StepSuccess, c.Jump(domain.StepService, sel))
	assert.Equal(t, domain.StepSuccess, c.Current())
}

func TestNewController_Preselected(t *testing.T) {
	c := NewController(true)
	assert.Equal(t, domain.StepPet, c.Current())
}

func TestFurthestReachable(t *testing.T) {
	sel := domain.NewSelection()
	assert.Equal(t, domain.StepService, FurthestReachable(sel))

	sel.ToggleService(1)
	assert.Equal(t, domain.StepPet, FurthestReachable(sel))

	sel.SetPet(10)
	assert.Equal(t, domain.StepDatetime, FurthestReachable(sel))

	sel.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	sel.SetTimeSlot("14:00")
	assert.Equal(t, domain.StepConfirm, FurthestReachable(sel))
}
