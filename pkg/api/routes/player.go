package routes

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tripscope/tripscope/pkg/replay"

	iso8601 "github.com/senseyeio/duration"
)

func PlayerRouter(router fiber.Router, session *replay.Session) {
	router.Get("/", getPlayerState(session))
	router.Post("/play", postPlay(session))
	router.Post("/pause", postPause(session))
	router.Post("/speed", postSpeed(session))
	router.Post("/seek", postSeek(session))
	router.Post("/step", postStep(session))
}

func getPlayerState(session *replay.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(session.Player.State())
	}
}

func postPlay(session *replay.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		speedQuery := c.Query("speed")

		if speedQuery == "" {
			session.Player.Play()
		} else {
			speed, err := strconv.ParseFloat(speedQuery, 64)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Speed must be a number",
				})
			}

			session.Player.PlayAtSpeed(speed)
		}

		return c.JSON(session.Player.State())
	}
}

func postPause(session *replay.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session.Player.Pause()

		return c.JSON(session.Player.State())
	}
}

func postSpeed(session *replay.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		factor, err := strconv.ParseFloat(c.Query("factor"), 64)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Factor must be a number",
			})
		}

		session.Player.SetSpeed(factor)

		return c.JSON(session.Player.State())
	}
}

// postSeek accepts either an absolute RFC3339 target time or an ISO8601
// duration offset from the start of the event log.
func postSeek(session *replay.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		timeQuery := c.Query("time")
		offsetQuery := c.Query("offset")

		var target time.Time

		switch {
		case timeQuery != "":
			parsed, err := time.Parse(time.RFC3339, timeQuery)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Time must be RFC3339 formatted",
				})
			}

			target = parsed
		case offsetQuery != "":
			offsetDuration, err := iso8601.ParseISO8601(offsetQuery)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Offset must be an ISO8601 duration",
				})
			}

			startTime, ok := session.EventLog.StartTime()
			if !ok {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Cannot seek by offset in an empty event log",
				})
			}

			target = offsetDuration.Shift(startTime)
		default:
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "A time or offset must be given",
			})
		}

		session.SeekTo(target)

		return c.JSON(session.Player.State())
	}
}

func postStep(session *replay.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		advanced := session.Player.AdvanceToNextEvent()

		return c.JSON(fiber.Map{
			"advanced": advanced,
			"state":    session.Player.State(),
		})
	}
}
