package planning

import (
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/planner"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/shopping"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/db"
)

// Handler serves the week planning routes: day plans, suggestions,
// shopping lists and the meat reminder.
type Handler struct {
	plans     *db.PlanRepository
	suggester *planner.Suggester
	shopping  *shopping.Service
	reminders *planner.ReminderService
}

func NewHandler(plans *db.PlanRepository, suggester *planner.Suggester, shoppingSvc *shopping.Service, reminders *planner.ReminderService) *Handler {
	return &Handler{
		plans:     plans,
		suggester: suggester,
		shopping:  shoppingSvc,
		reminders: reminders,
	}
}
