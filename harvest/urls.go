package harvest

import (
	"fmt"
	"strings"

	"github.com/fwojciec/ratedoc"
)

// DefaultYearURL is the year index page template on norges-bank.no. Both
// layouts are served from it; the page content decides which parser runs.
const DefaultYearURL = "https://www.norges-bank.no/tema/pengepolitikk/Rentemoter/%d-Rentemoter/"

// ValidateTemplate checks that template has exactly one %d verb for the year.
func ValidateTemplate(template string) error {
	if strings.Count(template, "%d") != 1 || strings.Count(template, "%") != 1 {
		return ratedoc.Errorf(ratedoc.EINVALID, "url template %q must contain a single %%d", template)
	}
	return nil
}

// YearURL renders template for year.
func YearURL(template string, year int) string {
	return fmt.Sprintf(template, year)
}
