package sessions

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// FeaturedSpeakerText builds the featured-speaker summary. The sessions
// must already be filtered to one conference and one speaker and sorted by
// name; they are listed in input order. A speaker is only featured with at
// least two sessions, otherwise the empty string comes back and the cached
// value is left alone.
func FeaturedSpeakerText(speaker string, confSessions []Session) string {
	if len(confSessions) < 2 {
		return ""
	}

	names := lo.Map(confSessions, func(s Session, _ int) string {
		return s.Name
	})

	return fmt.Sprintf("The following sessions feature the main speaker %s: %s",
		speaker, strings.Join(names, ", "))
}
