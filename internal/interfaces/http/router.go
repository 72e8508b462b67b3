package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// RouterDeps carries the single engine instance every handler group calls
// through the Command Gateway boundary (C13).
type RouterDeps struct {
	Engine *engine.Engine
}

// Router registers every command and read-model route.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	presence := NewPresenceHandler(deps.Engine)
	rfid := api.Group("/rfid")
	rfid.Post("/reads", presence.IngestRFIDRead)
	rfid.Post("/sweep", presence.ForceZoneSweep)

	cart := NewCartHandler(deps.Engine)
	sales := api.Group("/sales")
	sales.Post("/events", cart.IngestSalesEvent)
	basket := api.Group("/basket")
	basket.Post("/items", cart.AddCustomerItem)
	basket.Delete("/items", cart.RemoveCustomerItem)
	basket.Post("/checkout", cart.CheckoutCustomer)

	rules := NewRulesHandler(deps.Engine)
	templates := api.Group("/rule-templates")
	templates.Post("/", rules.UpsertRuleTemplate)
	templates.Delete("/:id", rules.DeleteRuleTemplate)
	effective := api.Group("/effective-rules")
	effective.Post("/", rules.UpsertEffectiveRule)
	effective.Delete("/:id", rules.DeleteEffectiveRule)

	tasks := NewTasksHandler(deps.Engine)
	taskGroup := api.Group("/tasks")
	taskGroup.Get("/", tasks.TaskList)
	taskGroup.Post("/:id/assign", tasks.AssignTask)
	taskGroup.Post("/:id/start", tasks.StartTask)
	taskGroup.Post("/:id/confirm", tasks.ConfirmTask)

	receiving := NewReceivingHandler(deps.Engine)
	receivingGroup := api.Group("/receiving-orders")
	receivingGroup.Get("/", receiving.ReceivingList)
	receivingGroup.Post("/", receiving.CreateReceivingOrder)
	receivingGroup.Post("/:id/confirm", receiving.ConfirmReceivingOrder)

	staff := NewStaffHandler(deps.Engine)
	staffGroup := api.Group("/staff")
	staffGroup.Post("/:id/shift", staff.SetStaffShift)

	locations := NewLocationHandler(deps.Engine)
	locationGroup := api.Group("/locations")
	locationGroup.Post("/", locations.UpsertLocation)
	locationGroup.Delete("/:id/sources", locations.DeleteLocationSource)

	readmodels := NewReadModelHandler(deps.Engine)
	api.Get("/dashboard", readmodels.Dashboard)
	api.Get("/zones/:id", readmodels.ZoneDetail)
	api.Get("/audit-log", readmodels.AuditLog)
	api.Get("/flow-timeline", readmodels.FlowTimeline)
}
