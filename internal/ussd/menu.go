package ussd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

// Selector tokens understood by the menu.
const (
	entrySelector  = "1" // Welcome menu: "Get Forecast"
	liveSelector   = "0" // range menu: today's live weather
	customSelector = "9" // range menu: custom date range
)

// User-facing terminal messages.
const (
	msgInvalidInput  = "Invalid input. Please start again."
	msgUnknownOption = "Invalid option. Please try again."
	msgBadLocation   = "Location not available."
	msgBadDate       = "Invalid date format. Use YYYY-MM-DD."
	msgStartAfterEnd = "Start date must not be after end date."
)

// ActionKind says what a terminal menu outcome wants fetched.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionForecast
	ActionLive
)

// Action is a fully resolved terminal request: everything the fetch layer
// needs, validated by the menu.
type Action struct {
	Kind     ActionKind
	Location weather.Location
	Start    time.Time
	End      time.Time
}

// Outcome is the menu's decision for one redelivered token sequence.
// Exactly one field applies: a non-empty Prompt keeps the session open for
// another turn, a non-empty Fail ends it with a terminal message, and
// otherwise Action describes the fetch to perform.
type Outcome struct {
	Prompt string
	Fail   string
	Action Action
}

// Menu is the stateless USSD menu. The carrier gateway redelivers the full
// input history every turn, so conversational position is re-derived from
// the token sequence on every call; nothing is stored between requests.
type Menu struct {
	locations   []weather.Location
	windows     []int // fixed forecast windows, in days; tokens are the day counts themselves
	maxSpanDays int

	// now is the clock used to anchor fixed windows; injectable for tests.
	now func() time.Time
}

// NewMenu builds a menu over an ordered location set. The 1-based position
// of a location doubles as its menu number.
func NewMenu(locations []weather.Location, windows []int, maxSpanDays int) *Menu {
	return &Menu{
		locations:   locations,
		windows:     windows,
		maxSpanDays: maxSpanDays,
		now:         time.Now,
	}
}

// step handles the token sequence whose length equals the step's index in
// the transition table.
type step func(m *Menu, tokens []string) Outcome

// steps is the transition table, keyed by token count. Any longer sequence
// is a terminal error.
var steps = []step{
	stepWelcome,
	stepEntry,
	stepLocation,
	stepRange,
	stepStartDate,
	stepEndDate,
}

// Next maps a token sequence to the next prompt or terminal outcome. It is
// a pure function of the tokens; calling it twice with the same sequence
// yields the same outcome.
func (m *Menu) Next(tokens []string) Outcome {
	if len(tokens) >= len(steps) {
		return Outcome{Fail: msgInvalidInput}
	}
	return steps[len(tokens)](m, tokens)
}

func stepWelcome(m *Menu, _ []string) Outcome {
	return Outcome{Prompt: "Welcome to ANGA Weather\n1. Get Forecast"}
}

func stepEntry(m *Menu, tokens []string) Outcome {
	if tokens[0] != entrySelector {
		return Outcome{Fail: msgUnknownOption}
	}

	var b strings.Builder
	b.WriteString("Choose location:")
	for i, loc := range m.locations {
		fmt.Fprintf(&b, "\n%d. %s", i+1, loc.Name)
	}
	return Outcome{Prompt: b.String()}
}

func stepLocation(m *Menu, tokens []string) Outcome {
	if _, ok := m.resolveLocation(tokens[1]); !ok {
		return Outcome{Fail: msgBadLocation}
	}

	var b strings.Builder
	b.WriteString("Forecast period:")
	fmt.Fprintf(&b, "\n%s. Today (live weather)", liveSelector)
	for _, w := range m.windows {
		unit := "days"
		if w == 1 {
			unit = "day"
		}
		fmt.Fprintf(&b, "\n%d. %d %s", w, w, unit)
	}
	fmt.Fprintf(&b, "\n%s. Custom range", customSelector)
	return Outcome{Prompt: b.String()}
}

func stepRange(m *Menu, tokens []string) Outcome {
	loc, ok := m.resolveLocation(tokens[1])
	if !ok {
		return Outcome{Fail: msgBadLocation}
	}

	switch sel := tokens[2]; {
	case sel == liveSelector:
		return Outcome{Action: Action{Kind: ActionLive, Location: loc}}
	case sel == customSelector:
		return Outcome{Prompt: "Enter start date (YYYY-MM-DD):"}
	default:
		n, err := strconv.Atoi(sel)
		if err != nil || !m.hasWindow(n) {
			// Unparseable and out-of-set selectors read the same to the user.
			return Outcome{Fail: msgUnknownOption}
		}
		today := weather.Midnight(m.now())
		return Outcome{Action: Action{
			Kind:     ActionForecast,
			Location: loc,
			Start:    today,
			End:      today.AddDate(0, 0, n-1),
		}}
	}
}

func stepStartDate(m *Menu, tokens []string) Outcome {
	if _, ok := m.resolveLocation(tokens[1]); !ok {
		return Outcome{Fail: msgBadLocation}
	}
	if _, err := ParseDate(tokens[3]); err != nil {
		return Outcome{Fail: msgBadDate}
	}
	return Outcome{Prompt: "Enter end date (YYYY-MM-DD):"}
}

func stepEndDate(m *Menu, tokens []string) Outcome {
	loc, ok := m.resolveLocation(tokens[1])
	if !ok {
		return Outcome{Fail: msgBadLocation}
	}
	start, err := ParseDate(tokens[3])
	if err != nil {
		return Outcome{Fail: msgBadDate}
	}
	end, err := ParseDate(tokens[4])
	if err != nil {
		return Outcome{Fail: msgBadDate}
	}
	if err := ValidateRange(start, end, m.maxSpanDays); err != nil {
		switch err {
		case ErrStartAfterEnd:
			return Outcome{Fail: msgStartAfterEnd}
		default:
			return Outcome{Fail: fmt.Sprintf("Date range too long. Maximum is %d days.", m.maxSpanDays)}
		}
	}
	return Outcome{Action: Action{
		Kind:     ActionForecast,
		Location: loc,
		Start:    start,
		End:      end,
	}}
}

// resolveLocation matches a token against the location set, either as a
// 1-based menu index or as a case-insensitive name. Anything else, index
// out of range included, is unresolved.
func (m *Menu) resolveLocation(token string) (weather.Location, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return weather.Location{}, false
	}

	if idx, err := strconv.Atoi(token); err == nil {
		if idx < 1 || idx > len(m.locations) {
			return weather.Location{}, false
		}
		return m.locations[idx-1], true
	}

	for _, loc := range m.locations {
		if strings.EqualFold(loc.Name, token) {
			return loc, true
		}
	}
	return weather.Location{}, false
}

func (m *Menu) hasWindow(n int) bool {
	for _, w := range m.windows {
		if w == n {
			return true
		}
	}
	return false
}
