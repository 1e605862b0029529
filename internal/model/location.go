package model

import "strings"

const (
	locationSep         = " | "
	locationPlaceholder = "-"
	// DefaultVenue 旧数据只有区与座位时的场馆占位
	DefaultVenue        = "EVENT LOCATION"
)

// TicketLocation 票根的场馆/区/座位
type TicketLocation struct {
	Venue string `json:"venue"`
	Zone  string `json:"zone"`
	Seat  string `json:"seat"`
}

// ComposeTicketLocation joins the three parts with " | ", rendering blanks as "-".
func ComposeTicketLocation(venue, zone, seat string) string {
	return strings.Join([]string{orDash(venue), orDash(zone), orDash(seat)}, locationSep)
}

// ParseTicketLocation tolerates legacy values with fewer segments:
//
//	"A"         -> (A, -, -)
//	"A | B"     -> (EVENT LOCATION, A, B)
//	"A | B | C" -> (A, B, C)
//
// Segments past the third are folded back into the seat.
func ParseTicketLocation(s string) TicketLocation {
	if strings.TrimSpace(s) == "" {
		return TicketLocation{Venue: locationPlaceholder, Zone: locationPlaceholder, Seat: locationPlaceholder}
	}
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = orDash(parts[i])
	}

	switch len(parts) {
	case 1:
		return TicketLocation{Venue: parts[0], Zone: locationPlaceholder, Seat: locationPlaceholder}
	case 2:
		return TicketLocation{Venue: DefaultVenue, Zone: parts[0], Seat: parts[1]}
	default:
		return TicketLocation{Venue: parts[0], Zone: parts[1], Seat: strings.Join(parts[2:], locationSep)}
	}
}

func orDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return locationPlaceholder
	}
	return s
}
