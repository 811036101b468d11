package servref

import (
	"strings"

	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/arthur-debert/piconlink/pkg/types"
)

// Service-type codes relevant to folding. Terrestrial references of any
// other service type fold down to TV so one icon covers the whole mux.
const (
	serviceTypeTV      = 0x1
	serviceTypeRadio   = 0x2
	serviceTypeACRadio = 0xA

	// refTypeIgnoreMask clears the flag bit that some receivers set on
	// otherwise ordinary type-1 references.
	refTypeIgnoreMask = 0x0100
)

// aliasServiceIDs are the service IDs (field[5]) of the radio services that
// are tagged inconsistently as 0x2 or 0xA across muxes; addfold synthesizes
// the complementary alias for them when field[3]&0xF == 0xF.
var aliasServiceIDs = map[int64]bool{
	0x1010: true,
	0x3201: true,
}

// Expander expands records into target link names according to a rule set.
type Expander struct {
	Rules types.RuleSet
	Ext   string
}

// NewExpander creates an expander. ext is the link filename extension,
// normally ".png".
func NewExpander(rules types.RuleSet, ext string) *Expander {
	return &Expander{Rules: rules, Ext: ext}
}

// Expand returns the target link names rec produces under the active rules,
// in rule order, deduplicated. Rule evaluation errors (unparseable numeric
// fields) fail only the affected rule and are returned alongside the targets
// that did expand.
func (e *Expander) Expand(rec *Record) ([]string, []error) {
	var targets []string
	var errs []error
	seen := make(map[string]bool)

	add := func(fields []string) {
		name := e.TargetName(fields)
		if !seen[name] {
			seen[name] = true
			targets = append(targets, name)
		}
	}

	if e.Rules.ServiceNames {
		add([]string{SanitizeName(rec.ServiceName)})
	}
	if e.Rules.Full || e.Rules.AddFold {
		add(rec.Ref.Fields())
	}
	if e.Rules.Short {
		add(shortFields(rec.Ref))
	}

	if e.Rules.AddFold {
		terrestrial, stype, err := foldTrigger(rec.Ref)
		switch {
		case err != nil:
			errs = append(errs, err)
		case terrestrial:
			if stype != serviceTypeTV && stype != serviceTypeRadio && stype != serviceTypeACRadio {
				add(rec.Ref.WithServiceType("1").Fields())
			}
			if stype == serviceTypeRadio || stype == serviceTypeACRadio {
				alias, aerr := aliasFields(rec.Ref, stype)
				if aerr != nil {
					errs = append(errs, aerr)
				} else if alias != nil {
					add(alias)
				}
			}
		}
	}

	if e.Rules.Fold {
		terrestrial, stype, err := foldTrigger(rec.Ref)
		switch {
		case err != nil:
			errs = append(errs, err)
		case terrestrial && stype != serviceTypeTV && stype != serviceTypeRadio && stype != serviceTypeACRadio:
			add(rec.Ref.WithServiceType("1").Fields())
		default:
			add(rec.Ref.Fields())
		}
	}

	return targets, errs
}

// TargetName builds a link filename from reference fields.
func (e *Expander) TargetName(fields []string) string {
	return strings.Join(fields, "_") + e.Ext
}

// SanitizeName makes a service name safe to use as a link filename.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == 0 {
			return '_'
		}
		return r
	}, name)
}

// foldTrigger reports whether the reference is a terrestrial-like type-1
// reference (the fold precondition) and returns its service type.
func foldTrigger(ref Reference) (bool, int64, error) {
	refType, err := ref.RefType()
	if err != nil {
		return false, 0, errors.Wrapf(err, errors.ErrRuleExpand, "fold rule failed for %s", ref)
	}
	if refType&^refTypeIgnoreMask != 1 {
		return false, 0, nil
	}
	stype, err := ref.ServiceType()
	if err != nil {
		return false, 0, errors.Wrapf(err, errors.ErrRuleExpand, "fold rule failed for %s", ref)
	}
	return true, stype, nil
}

// aliasFields synthesizes the complementary 0x2/0xA reference for the radio
// services carrying inconsistent service-type tags, or nil if the reference
// does not qualify.
func aliasFields(ref Reference, stype int64) ([]string, error) {
	sid, err := ref.HexField(5)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleExpand, "alias rule failed for %s", ref)
	}
	if !aliasServiceIDs[sid] {
		return nil, nil
	}
	chan4, err := ref.HexField(3)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleExpand, "alias rule failed for %s", ref)
	}
	if chan4&0xF != 0xF {
		return nil, nil
	}
	code := "A"
	if stype == serviceTypeACRadio {
		code = "2"
	}
	return ref.WithServiceType(code).Fields(), nil
}

// shortFields builds the short reference form: field[0] followed by
// fields[3..6]. Short references are clamped rather than rejected when the
// reference has fewer fields.
func shortFields(ref Reference) []string {
	fields := ref.Fields()
	out := make([]string, 0, 5)
	if len(fields) > 0 {
		out = append(out, fields[0])
	}
	if len(fields) > 3 {
		out = append(out, fields[3:min(7, len(fields))]...)
	}
	return out
}
