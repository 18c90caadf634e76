// Package translate formats user-facing shiftctl messages for the host
// locale.
package translate

import (
	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ardnew/softshift/pkg"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		pkg.LogDebug(pkg.ComponentCLI, "locale lookup failed", "error", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage replaces the printer with one for tag.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// From formats an en-US Sprintf() format for the current locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
