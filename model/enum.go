package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned for a category label outside the fixed set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownNamespace is returned for an unrecognized tag namespace keyword.
	ErrUnknownNamespace = errors.New("unknown tag namespace")
)

// Category classifies a record.
type Category uint8

// Categories, in their wire order.
const (
	CategoryDoujinshi Category = iota
	CategoryManga
	CategoryArtistCG
	CategoryGameCG
	CategoryWestern
	CategoryNonH
	CategoryImageSet
	CategoryCosplay
	CategoryAsianPorn
	CategoryMisc
	CategoryPrivate
)

var categoryLabels = [...]string{
	CategoryDoujinshi: "Doujinshi",
	CategoryManga:     "Manga",
	CategoryArtistCG:  "Artist CG",
	CategoryGameCG:    "Game CG",
	CategoryWestern:   "Western",
	CategoryNonH:      "Non-H",
	CategoryImageSet:  "Image Set",
	CategoryCosplay:   "Cosplay",
	CategoryAsianPorn: "Asian Porn",
	CategoryMisc:      "Misc",
	CategoryPrivate:   "private",
}

var categoryByLabel = func() map[string]Category {
	m := make(map[string]Category, len(categoryLabels))
	for c, label := range categoryLabels {
		m[label] = Category(c)
	}
	return m
}()

// ParseCategory returns the Category for its exact wire label.
func ParseCategory(label string) (Category, error) {
	c, ok := categoryByLabel[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, label)
	}
	return c, nil
}

// String returns the wire label of the category.
func (c Category) String() string {
	if int(c) < len(categoryLabels) {
		return categoryLabels[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if int(c) >= len(categoryLabels) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(categoryLabels[c]), nil
}

// Namespace is the prefix of a "namespace:value" tag.
type Namespace uint8

// Namespaces, in their wire order. NamespaceNone marks a tag without prefix.
const (
	NamespaceOther Namespace = iota
	NamespaceFemale
	NamespaceMale
	NamespaceMixed
	NamespaceLanguage
	NamespaceReclass
	NamespaceParody
	NamespaceCharacter
	NamespaceGroup
	NamespaceArtist
	NamespaceCosplayer
	NamespaceLocation
	NamespaceTemp
	NamespaceNone
)

var namespaceKeywords = [...]string{
	NamespaceOther:     "other",
	NamespaceFemale:    "female",
	NamespaceMale:      "male",
	NamespaceMixed:     "mixed",
	NamespaceLanguage:  "language",
	NamespaceReclass:   "reclass",
	NamespaceParody:    "parody",
	NamespaceCharacter: "character",
	NamespaceGroup:     "group",
	NamespaceArtist:    "artist",
	NamespaceCosplayer: "cosplayer",
	NamespaceLocation:  "location",
	NamespaceTemp:      "temp",
	NamespaceNone:      "none",
}

var namespaceByKeyword = func() map[string]Namespace {
	m := make(map[string]Namespace, len(namespaceKeywords))
	for ns, kw := range namespaceKeywords[:NamespaceNone] {
		m[kw] = Namespace(ns)
	}
	return m
}()

// ParseNamespace returns the Namespace for a tag prefix keyword.
// "none" is not a valid prefix; it only names the absence of one.
func ParseNamespace(keyword string) (Namespace, error) {
	ns, ok := namespaceByKeyword[keyword]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNamespace, keyword)
	}
	return ns, nil
}

// String returns the keyword of the namespace.
func (n Namespace) String() string {
	if int(n) < len(namespaceKeywords) {
		return namespaceKeywords[n]
	}
	return fmt.Sprintf("Namespace(%d)", uint8(n))
}
