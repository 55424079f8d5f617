package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/Billy-Davies-2/expansion-draft/internal/draft"
)

// hclRulesFile is the layout of a rules file. Every setting is optional and
// falls back to draft.DefaultRules.
//
//	max_picks_per_original_owner = 3
//	pick_time_limit_seconds      = 600
//	timer_cutoff                 = 100
//	slots = ["QB", "RB", "RB", "WR", "WR", "TE", "FLEX", "FLEX", "FLEX", "SUPERFLEX", "K", "DL", "LB", "DB"]
//
//	limits {
//	  qb = 1
//	  superflex = 1
//	}
type hclRulesFile struct {
	MaxPicksPerOriginalOwner *int       `hcl:"max_picks_per_original_owner,optional"`
	PickTimeLimitSeconds     *int       `hcl:"pick_time_limit_seconds,optional"`
	TimerCutoff              *int       `hcl:"timer_cutoff,optional"`
	Slots                    []string   `hcl:"slots,optional"`
	Limits                   *hclLimits `hcl:"limits,block"`
}

type hclLimits struct {
	QB        *int `hcl:"qb,optional"`
	RB        *int `hcl:"rb,optional"`
	WR        *int `hcl:"wr,optional"`
	TE        *int `hcl:"te,optional"`
	IDP       *int `hcl:"idp,optional"`
	K         *int `hcl:"k,optional"`
	Flex      *int `hcl:"flex,optional"`
	Superflex *int `hcl:"superflex,optional"`
}

var knownSlots = map[string]draft.Slot{
	"QB": draft.SlotQB, "RB": draft.SlotRB, "WR": draft.SlotWR, "TE": draft.SlotTE,
	"FLEX": draft.SlotFlex, "SUPERFLEX": draft.SlotSuperflex, "K": draft.SlotK,
	"DL": draft.SlotDL, "LB": draft.SlotLB, "DB": draft.SlotDB,
}

// LoadRules reads a rules file. An empty path returns the defaults.
func LoadRules(path string) (draft.Rules, error) {
	if path == "" {
		return draft.DefaultRules(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return draft.Rules{}, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return ParseRules(src, path)
}

// ParseRules decodes HCL rules source, overlaying it on the defaults
func ParseRules(src []byte, filename string) (draft.Rules, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return draft.Rules{}, fmt.Errorf("failed to parse rules file %s: %w", filename, diags)
	}

	var parsed hclRulesFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return draft.Rules{}, fmt.Errorf("failed to decode rules file %s: %w", filename, diags)
	}

	rules := draft.DefaultRules()
	var problems hcl.Diagnostics

	setAtLeast := func(name string, min int, v *int, apply func(int)) {
		if v == nil {
			return
		}
		if *v < min {
			problems = append(problems, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid rules value",
				Detail:   fmt.Sprintf("%s must be at least %d, got %d", name, min, *v),
			})
			return
		}
		apply(*v)
	}

	// a zero cap or time limit would switch the rule off rather than tighten it
	setAtLeast("max_picks_per_original_owner", 1, parsed.MaxPicksPerOriginalOwner, func(n int) { rules.MaxPicksPerOriginalOwner = n })
	setAtLeast("pick_time_limit_seconds", 1, parsed.PickTimeLimitSeconds, func(n int) { rules.PickTimeLimit = time.Duration(n) * time.Second })
	setAtLeast("timer_cutoff", 0, parsed.TimerCutoff, func(n int) { rules.TimerCutoff = n })

	if l := parsed.Limits; l != nil {
		for _, item := range []struct {
			name   string
			bucket draft.Bucket
			v      *int
		}{
			{"qb", draft.BucketQB, l.QB},
			{"rb", draft.BucketRB, l.RB},
			{"wr", draft.BucketWR, l.WR},
			{"te", draft.BucketTE, l.TE},
			{"idp", draft.BucketIDP, l.IDP},
			{"k", draft.BucketK, l.K},
			{"flex", draft.BucketFlex, l.Flex},
			{"superflex", draft.BucketSuperflex, l.Superflex},
		} {
			bucket := item.bucket
			setAtLeast("limits."+item.name, 0, item.v, func(n int) { rules.Limits[bucket] = n })
		}
	}

	if parsed.Slots != nil {
		slots := make([]draft.Slot, 0, len(parsed.Slots))
		for _, s := range parsed.Slots {
			slot, ok := knownSlots[strings.ToUpper(s)]
			if !ok {
				problems = append(problems, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unknown slot",
					Detail:   fmt.Sprintf("slot %q is not a board slot", s),
				})
				continue
			}
			slots = append(slots, slot)
		}
		rules.Slots = slots
	}

	if problems.HasErrors() {
		return draft.Rules{}, fmt.Errorf("invalid rules file %s: %w", filename, problems)
	}
	return rules, nil
}
