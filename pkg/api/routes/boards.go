package routes

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/mvgboard/mvgboard/pkg/archiver"
	"github.com/mvgboard/mvgboard/pkg/boards"
	"github.com/mvgboard/mvgboard/pkg/database"
	"github.com/mvgboard/mvgboard/pkg/departures"
	"github.com/mvgboard/mvgboard/pkg/dispatcher"
)

// A departures request waits for everything queued ahead of it plus the
// inter-request cooldowns, so the wait budget is generous.
const departuresTimeout = 60 * time.Second

var requestDispatcher *dispatcher.Dispatcher
var boardSet *boards.BoardSet

func Setup(d *dispatcher.Dispatcher, b *boards.BoardSet) {
	requestDispatcher = d
	boardSet = b
}

func BoardsRouter(router fiber.Router) {
	router.Get("/", listBoards)
	router.Get("/:identifier", getBoard)
	router.Get("/:identifier/departures", getBoardDepartures)
	router.Get("/:identifier/departures/cached", getBoardDeparturesCached)
	router.Get("/:identifier/history", getBoardHistory)
}

func listBoards(c *fiber.Ctx) error {
	return c.JSON(boardSet.All())
}

func getBoard(c *fiber.Ctx) error {
	board := boardSet.Lookup(c.Params("identifier"))
	if board == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Board matching identifier",
		})
	}

	return c.JSON(board)
}

func getBoardDepartures(c *fiber.Ctx) error {
	board := boardSet.Lookup(c.Params("identifier"))
	if board == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Board matching identifier",
		})
	}

	request, err := board.RequestAt(time.Now())
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return awaitResult(c, request)
}

func getBoardDeparturesCached(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	if boardSet.Lookup(identifier) == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Board matching identifier",
		})
	}

	result, found := requestDispatcher.CachedResult(c.Context(), identifier)
	if !found {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No cached result for Board",
		})
	}

	return marshalReduced(c, result)
}

func getBoardHistory(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	if boardSet.Lookup(identifier) == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Board matching identifier",
		})
	}

	if !database.Connected() {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Result history is not enabled",
		})
	}

	count := c.QueryInt("count", 10)

	results, err := archiver.RecentResults(c.Context(), identifier, count)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to load result history",
		})
	}

	return marshalReduced(c, results)
}

// AdHocDepartures serves /departures?stop=…, building a one-off request
// outside the configured board set.
func AdHocDepartures(c *fiber.Ctx) error {
	board := &boards.Board{
		Name:            "adhoc",
		Stop:            c.Query("stop"),
		DestinationStop: c.Query("destination"),
		Lines:           splitQueryList(c.Query("lines")),
		Destinations:    splitQueryList(c.Query("destinations")),
		Identifier:      c.Query("identifier"),
	}

	if board.Stop == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter stop is required",
		})
	}

	request, err := board.RequestAt(time.Now())
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return awaitResult(c, request)
}

func awaitResult(c *fiber.Ctx, request departures.Request) error {
	select {
	case result := <-requestDispatcher.Submit(request):
		return marshalReduced(c, result)
	case <-time.After(departuresTimeout):
		c.SendStatus(fiber.StatusGatewayTimeout)
		return c.JSON(fiber.Map{
			"error": "Timed out waiting for the request queue",
		})
	}
}

// marshalReduced reduces the response with sheriff groups: requesters get
// the basic group, ?detailed=true adds the internal fields (failure tag,
// generation time).
func marshalReduced(c *fiber.Ctx, data any) error {
	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, data)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce the response",
		})
	}

	return c.JSON(reduced)
}

func splitQueryList(value string) []string {
	if value == "" {
		return nil
	}

	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}

	return list
}
