package service

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/allisson/piimask/internal/masking/domain"
)

// LeafAction is the masking path that governs a string leaf.
type LeafAction uint8

const (
	// LeafSkip returns the value unchanged (field is exempted).
	LeafSkip LeafAction = iota

	// LeafRegexMask masks every match of the first matching configured
	// pattern in place, preserving non-matching portions.
	LeafRegexMask

	// LeafDetect classifies the leaf and masks it unless custom.
	LeafDetect

	// LeafMask masks the leaf unconditionally (explicit-field mode and
	// the field is listed); classification is advisory only.
	LeafMask

	// LeafPass returns the value unchanged (explicit-field mode and the
	// field is not listed).
	LeafPass
)

// PolicyResolver decides whether sanitization applies to a route at all,
// and which masking path governs each string leaf. All decisions derive
// from the immutable options; the resolver holds no mutable state.
type PolicyResolver struct {
	opts     *domain.Options
	patterns []*regexp.Regexp
	skip     map[string]struct{}
	sanitize map[string]struct{}
}

// NewPolicyResolver compiles the configured patterns and indexes the field
// sets. A pattern that fails to compile is a configuration error; nothing
// fails per request afterwards.
func NewPolicyResolver(opts *domain.Options) (*PolicyResolver, error) {
	patterns := make([]*regexp.Regexp, 0, len(opts.RegexToSanitize))
	for _, raw := range opts.RegexToSanitize {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRegexPattern, raw)
		}
		patterns = append(patterns, re)
	}

	return &PolicyResolver{
		opts:     opts,
		patterns: patterns,
		skip:     toSet(opts.FieldsToSkip),
		sanitize: toSet(opts.FieldsToSanitize),
	}, nil
}

// IsRouteInScope reports whether sanitization applies to the route.
//
// Route entries are matched by literal string equality even though the
// configuration accepts pattern-like values; this mirrors the engine's
// original membership semantics and is a documented constant, not an
// oversight. The allowlist and denylist are independent checks: a route
// absent from a configured allowlist is out of scope even if it is also
// absent from the denylist.
func (p *PolicyResolver) IsRouteInScope(route string) bool {
	if p.opts.Disable {
		return false
	}

	if len(p.opts.AllowlistRoutes) > 0 && !slices.Contains(p.opts.AllowlistRoutes, route) {
		return false
	}

	if slices.Contains(p.opts.DenylistRoutes, route) {
		return false
	}

	return true
}

// ResolveLeaf decides the masking path for a string leaf, in strict
// precedence order: skip, configured regex, explicit-field mode, detect.
// For LeafRegexMask the first matching pattern is returned; remaining
// patterns are never tried once one matches.
func (p *PolicyResolver) ResolveLeaf(fieldName, value string) (LeafAction, *regexp.Regexp) {
	if _, ok := p.skip[fieldName]; ok {
		return LeafSkip, nil
	}

	if p.scanAllowed(value) {
		for _, re := range p.patterns {
			if re.MatchString(value) {
				return LeafRegexMask, re
			}
		}
	}

	// A non-empty explicit-field list overrides auto-detect entirely:
	// listed fields are masked no matter how they classify, everything
	// else passes through.
	if len(p.sanitize) > 0 {
		if _, ok := p.sanitize[fieldName]; ok {
			return LeafMask, nil
		}
		return LeafPass, nil
	}

	return LeafDetect, nil
}

// scanAllowed applies the advisory cap on pattern scanning length.
func (p *PolicyResolver) scanAllowed(value string) bool {
	return p.opts.MaxStringScanLen <= 0 || len(value) <= p.opts.MaxStringScanLen
}

// toSet indexes a list of field names for O(1) membership checks.
func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
