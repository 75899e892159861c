package schema

import (
	"strings"

	"github.com/hupe1980/catalogdb/model"
)

// RawTag is a tag string split into namespace and value.
type RawTag struct {
	Namespace model.Namespace
	Value     string
}

// ParseTag splits s on its first colon. Without a colon the whole string is
// the value and the namespace is model.NamespaceNone. With a colon the prefix
// must be a known namespace keyword.
func ParseTag(s string) (RawTag, error) {
	keyword, value, ok := strings.Cut(s, ":")
	if !ok {
		return RawTag{Namespace: model.NamespaceNone, Value: s}, nil
	}
	ns, err := model.ParseNamespace(keyword)
	if err != nil {
		return RawTag{}, err
	}
	return RawTag{Namespace: ns, Value: value}, nil
}

// String returns the tag in its "namespace:value" wire form.
func (t RawTag) String() string {
	if t.Namespace == model.NamespaceNone {
		return t.Value
	}
	return t.Namespace.String() + ":" + t.Value
}
