package slug

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	handleRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// MaxLength is the longest handle the shop accepts.
const MaxLength = 255

var fold = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"ç", "c", "è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ı", "i",
	"ñ", "n", "ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o", "ø", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u", "ş", "s", "ğ", "g", "ß", "ss",
	"&", " and ",
)

// Generate turns a title or tag into a handle the way the shop does:
//
//   - "Mega Drive Controller" → "mega-drive-controller"
//   - "Pokémon & Friends" → "pokemon-and-friends"
func Generate(name string) string {
	s := fold.Replace(strings.ToLower(strings.TrimSpace(name)))
	return strings.Trim(nonAlnum.ReplaceAllString(s, "-"), "-")
}

// IsValid reports whether handle is already in canonical form.
func IsValid(handle string) bool {
	return handle != "" && utf8.RuneCountInString(handle) <= MaxLength && handleRe.MatchString(handle)
}
