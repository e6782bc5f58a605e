package httpapi

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/ussd-weather-gateway/internal/ussd"
	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

var validate = validator.New()

// Terminal messages for upstream failures, in the gateway's voice.
const (
	msgForecastUnavailable = "Error fetching forecast. Try again later."
	msgLiveUnavailable     = "Error fetching live weather. Try again later."
)

// ussdRequest is one gateway turn. Text is the full accumulated input
// since session start; sessionId is correlation only and never state.
type ussdRequest struct {
	SessionID   string
	PhoneNumber string `validate:"required"`
	Text        string
}

// RegisterRoutes wires the USSD callback into the Fiber app. Every menu
// path resolves to a rendered CON/END reply; errors never reach the
// gateway unrendered.
func RegisterRoutes(app *fiber.App, menu *ussd.Menu, service *weather.Service, replyMaxLen int) {
	app.Post("/ussd", func(c *fiber.Ctx) error {
		req := ussdRequest{
			SessionID:   c.FormValue("sessionId"),
			PhoneNumber: c.FormValue("phoneNumber"),
			Text:        c.FormValue("text"),
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		out := menu.Next(ussd.Tokenize(req.Text))

		var reply string
		switch {
		case out.Prompt != "":
			reply = ussd.Continue(out.Prompt, replyMaxLen)
		case out.Fail != "":
			reply = ussd.End(out.Fail, replyMaxLen)
		default:
			reply = runAction(c.UserContext(), service, out.Action, replyMaxLen, req.SessionID)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(reply)
	})
}

// runAction executes a resolved terminal action and renders the reply.
func runAction(ctx context.Context, service *weather.Service, a ussd.Action, replyMaxLen int, sessionID string) string {
	switch a.Kind {
	case ussd.ActionLive:
		report, err := service.Live(ctx, a.Location)
		if err != nil {
			log.Printf("live weather failed for %s (session %s): %v", a.Location.Key(), sessionID, err)
			return ussd.End(msgLiveUnavailable, replyMaxLen)
		}
		return ussd.End(ussd.RenderLive(report), replyMaxLen)

	case ussd.ActionForecast:
		points, err := service.Aggregate(ctx, a.Location, a.Start, a.End)
		if err != nil {
			log.Printf("forecast failed for %s (session %s): %v", a.Location.Key(), sessionID, err)
			return ussd.End(msgForecastUnavailable, replyMaxLen)
		}
		return ussd.End(ussd.RenderForecast(a.Location, points), replyMaxLen)

	default:
		return ussd.End("Invalid input. Please start again.", replyMaxLen)
	}
}
