package checker

import (
	"fmt"

	"github.com/xab-mack/reguard/internal/model"
	"github.com/xab-mack/reguard/internal/util"
)

const RuleID = "SOL-ACCESS-CONTROL-GUARD"

// Policy is the run configuration for the access-control pass.
type Policy struct {
	// RequiredModifiers are modifier names accepted as sufficient protection
	// (e.g. nonReentrant). Comparison is exact string equality.
	RequiredModifiers []string
	// Whitelist holds bare function names exempt from the check.
	Whitelist []string
}

// Check walks a contract's entry points and flags state-mutating functions
// that carry none of the required modifiers and are not whitelisted.
// Pure: provider order in, same order out, no mutation of the model.
func Check(c *model.Contract, pol Policy) model.Report {
	required := toSet(pol.RequiredModifiers)
	exempt := toSet(pol.Whitelist)

	rep := model.Report{Contract: c.Name}
	for _, fn := range c.EntryPoints {
		if fn.IsConstructor {
			continue
		}
		if fn.IsView {
			continue
		}
		if protected(fn, required) {
			continue
		}
		if _, ok := exempt[fn.Name]; ok {
			continue
		}
		rep.Findings = append(rep.Findings, model.Finding{
			RuleID:      RuleID,
			Contract:    c.Name,
			Function:    fn.CanonicalName,
			Name:        fn.Name,
			File:        fn.File,
			Line:        fn.Line,
			Message:     fmt.Sprintf("%s should have an non re-eentrant modifier", fn.CanonicalName),
			Fingerprint: util.Fingerprint(RuleID, c.Name, fn.CanonicalName),
		})
	}
	return rep
}

// protected reports whether at least one attached modifier is in the required
// set. A function with zero modifiers is never protected.
func protected(fn model.Function, required map[string]struct{}) bool {
	for _, m := range fn.Modifiers {
		if _, ok := required[m.String()]; ok {
			return true
		}
	}
	return false
}

func toSet(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}
