package scraper

import (
	"regexp"
	"strings"

	"github.com/jobradar/jobradar/internal/db/models"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// stripHTML removes markup from rich-text descriptions some sources return.
// Postings keep their original description; this is only used where a source
// mixes plain-text and HTML fields.
func stripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// inferSeniority guesses a level from the posting title. Sources rarely
// report seniority as structured data, so title keywords are the best signal
// available; unset is the honest default.
func inferSeniority(title string) models.Seniority {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "intern "), strings.HasSuffix(t, "intern"), strings.Contains(t, "internship"):
		return models.SeniorityIntern
	case strings.Contains(t, "principal"):
		return models.SeniorityPrincipal
	case strings.Contains(t, "staff"):
		return models.SeniorityStaff
	case strings.Contains(t, "senior"), strings.Contains(t, "sr."), strings.Contains(t, "sr "):
		return models.SenioritySenior
	case strings.Contains(t, "junior"), strings.Contains(t, "jr."), strings.Contains(t, "jr "):
		return models.SeniorityJunior
	case strings.Contains(t, "entry level"), strings.Contains(t, "entry-level"):
		return models.SeniorityEntry
	case strings.Contains(t, "mid-level"), strings.Contains(t, "mid level"):
		return models.SeniorityMid
	default:
		return models.SeniorityUnset
	}
}

// parseEmploymentType maps the free-text commitment strings sources report
// onto the canonical enum.
func parseEmploymentType(s string) models.EmploymentType {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "_", " "))) {
	case "full time", "full-time", "fulltime", "permanent":
		return models.EmploymentTypeFullTime
	case "part time", "part-time", "parttime":
		return models.EmploymentTypePartTime
	case "contract", "contractor", "freelance", "temporary":
		return models.EmploymentTypeContract
	case "internship", "intern":
		return models.EmploymentTypeInternship
	default:
		return models.EmploymentTypeUnset
	}
}

// isRemoteLocation reports whether a free-text location string describes a
// remote position.
func isRemoteLocation(location string) bool {
	l := strings.ToLower(location)
	return strings.Contains(l, "remote") || strings.Contains(l, "anywhere") || strings.Contains(l, "work from home")
}
