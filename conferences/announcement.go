package conferences

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// DefaultLowSeatThreshold is the seat count at or below which a conference
// counts as nearly sold out.
const DefaultLowSeatThreshold = 5

// AnnouncementText builds the "nearly sold out" announcement from current
// inventory state. Conferences appear in input order. Returns the empty
// string when nothing is nearly sold out, in which case the caller should
// clear the cached announcement rather than store an empty one.
func AnnouncementText(confs []Conference, lowSeatThreshold int) string {
	nearlySoldOut := lo.Filter(confs, func(c Conference, _ int) bool {
		return c.SeatsAvailable > 0 && c.SeatsAvailable <= lowSeatThreshold
	})
	if len(nearlySoldOut) == 0 {
		return ""
	}

	names := lo.Map(nearlySoldOut, func(c Conference, _ int) string {
		return c.Name
	})

	return fmt.Sprintf("Last chance to attend! The following conferences are nearly sold out: %s",
		strings.Join(names, ", "))
}
