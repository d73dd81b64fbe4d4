package assets

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// The Go fonts cover the Latin Extended range needed for Czech day and month
// names.
var (
	FontTTF     = goregular.TTF
	BoldFontTTF = gobold.TTF
)
