package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	SetLanguage(language.AmericanEnglish)
	assert.Equal(t, "register 2 = 0xA0", From("register %d = 0x%02X", 2, 0xA0))
	assert.Equal(t, "1,024 flushes", From("%d flushes", 1024))
}
