package service

import (
	"strings"

	"github.com/allisson/piimask/internal/masking/domain"
)

// Walker traverses a JSON-like Value depth-first, delegating every string
// leaf to the policy resolver, classifier, and codec, and rebuilding an
// equivalent structure around masked or original leaves. The input is never
// mutated; every call produces a fresh Value.
//
// Policy is keyed by the leaf's field name: the object key the leaf (or its
// enclosing array) sits under, never the full path. Nested fields with the
// same leaf name inherit the same policy regardless of ancestry. This is a
// documented design constant of the engine, not an oversight.
type Walker struct {
	policy     *PolicyResolver
	classifier Classifier
	codec      Codec
}

// NewWalker creates a walker over the given collaborators.
func NewWalker(policy *PolicyResolver, classifier Classifier, codec Codec) *Walker {
	return &Walker{
		policy:     policy,
		classifier: classifier,
		codec:      codec,
	}
}

// Sanitize masks PII in the value if the route is in scope. Out-of-scope
// routes get a deep copy of the input with no transformation, keeping the
// no-aliasing guarantee uniform across both outcomes.
func (w *Walker) Sanitize(route string, value domain.Value) (domain.Value, error) {
	if !w.policy.IsRouteInScope(route) {
		return value.Clone(), nil
	}
	return w.sanitizeValue("", value)
}

func (w *Walker) sanitizeValue(fieldName string, value domain.Value) (domain.Value, error) {
	switch value.Kind() {
	case domain.KindObject:
		members := make([]domain.Member, 0, value.Len())
		for _, m := range value.Members() {
			child, err := w.sanitizeValue(m.Key, m.Value)
			if err != nil {
				return domain.Value{}, err
			}
			members = append(members, domain.Member{Key: m.Key, Value: child})
		}
		return domain.Object(members...), nil

	case domain.KindArray:
		// Array items keep the enclosing field name; indices are not field names.
		items := make([]domain.Value, 0, value.Len())
		for _, item := range value.Items() {
			child, err := w.sanitizeValue(fieldName, item)
			if err != nil {
				return domain.Value{}, err
			}
			items = append(items, child)
		}
		return domain.Array(items...), nil

	case domain.KindString:
		s, _ := value.StringValue()
		return w.sanitizeLeaf(fieldName, s)

	default:
		// Numbers, booleans, and null pass through unchanged.
		return value, nil
	}
}

func (w *Walker) sanitizeLeaf(fieldName, value string) (domain.Value, error) {
	action, pattern := w.policy.ResolveLeaf(fieldName, value)

	switch action {
	case LeafSkip, LeafPass:
		return domain.String(value), nil

	case LeafRegexMask:
		// Each match is individually encrypted in place; classification for
		// regex matches is always custom and, like every class, masks the
		// same way. Surrounding text is preserved.
		var encodeErr error
		masked := pattern.ReplaceAllStringFunc(value, func(match string) string {
			token, err := w.codec.Encode(match)
			if err != nil {
				encodeErr = err
				return match
			}
			return token
		})
		if encodeErr != nil {
			return domain.Value{}, encodeErr
		}
		return domain.String(masked), nil

	case LeafMask:
		// Explicitly listed fields are masked regardless of how they
		// classify; the custom gate only applies to auto-detection.
		token, err := w.codec.Encode(value)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.String(token), nil

	default: // LeafDetect
		if w.classifier.Classify(fieldName, value) == domain.PiiTypeCustom {
			return domain.String(value), nil
		}
		token, err := w.codec.Encode(value)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.String(token), nil
	}
}

// Decode is the inverse traversal: every string leaf containing a colon is
// handed to the codec and replaced with the decrypted original; everything
// else passes through unchanged. Decode is deliberately not route-gated and
// not configuration-gated.
//
// Any colon-bearing string is treated as a token, so a leaf that merely
// contains a colon fails decoding and the error is surfaced to the caller
// rather than silently skipped. A consequence is that a regex-masked leaf
// with surrounding text does not decode back.
func (w *Walker) Decode(value domain.Value) (domain.Value, error) {
	switch value.Kind() {
	case domain.KindObject:
		members := make([]domain.Member, 0, value.Len())
		for _, m := range value.Members() {
			child, err := w.Decode(m.Value)
			if err != nil {
				return domain.Value{}, err
			}
			members = append(members, domain.Member{Key: m.Key, Value: child})
		}
		return domain.Object(members...), nil

	case domain.KindArray:
		items := make([]domain.Value, 0, value.Len())
		for _, item := range value.Items() {
			child, err := w.Decode(item)
			if err != nil {
				return domain.Value{}, err
			}
			items = append(items, child)
		}
		return domain.Array(items...), nil

	case domain.KindString:
		s, _ := value.StringValue()
		if !strings.Contains(s, ":") {
			return value, nil
		}
		plaintext, err := w.codec.Decode(s)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.String(plaintext), nil

	default:
		return value, nil
	}
}
