package coalesced

import (
	"strings"

	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/utils"
)

// SkippedSection records a delta section that was not applied.
type SkippedSection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MergeResult summarizes one or more merge passes.
type MergeResult struct {
	// Applied counts delta values that changed a target section.
	Applied int `json:"applied"`
	// Unchanged counts delta values that had nothing to do, such as an
	// AddUnique whose value was already present.
	Unchanged int `json:"unchanged"`
	// Ignored counts delta values whose action is not supported.
	Ignored int `json:"ignored"`
	// CreatedSections lists "<asset> <section>" names created by the merge.
	CreatedSections []string `json:"created_sections,omitempty"`
	// SkippedSections lists delta sections that were not applied.
	SkippedSections []SkippedSection `json:"skipped_sections,omitempty"`
	// ChangedAssets lists target assets that were modified, in first-change order.
	ChangedAssets []string `json:"changed_assets,omitempty"`
	// MissingAssets lists target files named by the delta that do not exist.
	MissingAssets []string `json:"missing_assets,omitempty"`
}

// Mutated reports whether the merge changed anything.
func (r *MergeResult) Mutated() bool {
	return len(r.ChangedAssets) > 0
}

// Append folds other into r.
func (r *MergeResult) Append(other MergeResult) {
	r.Applied += other.Applied
	r.Unchanged += other.Unchanged
	r.Ignored += other.Ignored
	r.CreatedSections = append(r.CreatedSections, other.CreatedSections...)
	r.SkippedSections = append(r.SkippedSections, other.SkippedSections...)
	for _, name := range other.ChangedAssets {
		r.markChanged(name)
	}
	for _, name := range other.MissingAssets {
		r.MissingAssets = appendUnique(r.MissingAssets, name)
	}
}

func (r *MergeResult) markChanged(asset string) {
	r.ChangedAssets = appendUnique(r.ChangedAssets, asset)
}

func appendUnique(names []string, name string) []string {
	folded := utils.FoldKey(name)
	for _, existing := range names {
		if utils.FoldKey(existing) == folded {
			return names
		}
	}
	return append(names, name)
}

type outcome int

const (
	outcomeApplied outcome = iota
	outcomeUnchanged
	outcomeIgnored
)

// PerformMerge applies every value of delta to targets, in order.
//
// Each delta section name is split into a target asset name and a section
// name. Sections aimed at an asset missing from targets are skipped and
// logged; the target section is created when the asset exists but the
// section does not. Values are applied in their original order, so later
// values see the effect of earlier ones.
func PerformMerge(targets *Assets, delta *ConfigAsset, game Game) MergeResult {
	var result MergeResult

	for _, deltaSection := range delta.Sections() {
		assetName, sectionName, ok := SplitDeltaSectionName(deltaSection.Name)
		if !ok {
			log.Warnf("Delta %s: section [%s] is not of the form \"<file> <section>\", skipping", delta.Name, deltaSection.Name)
			result.SkippedSections = append(result.SkippedSections, SkippedSection{
				Name:   deltaSection.Name,
				Reason: "section name has no target file",
			})
			continue
		}

		target, found := targets.Get(assetName)
		if !found {
			logMissingAsset(delta.Name, assetName, sectionName, targets)
			result.SkippedSections = append(result.SkippedSections, SkippedSection{
				Name:   deltaSection.Name,
				Reason: "target file " + assetName + " does not exist",
			})
			result.MissingAssets = appendUnique(result.MissingAssets, assetName)
			continue
		}

		section, created := target.GetOrAddSection(sectionName)
		if created {
			log.Debugf("Created section [%s] in %s", sectionName, target.Name)
			result.CreatedSections = append(result.CreatedSections, DeltaSectionName(target.Name, sectionName))
			result.markChanged(target.Name)
		}

		for _, deltaProperty := range deltaSection.Properties() {
			for _, v := range deltaProperty.Values {
				switch applyValue(section, deltaProperty.Name, v, game) {
				case outcomeApplied:
					result.Applied++
					result.markChanged(target.Name)
				case outcomeUnchanged:
					result.Unchanged++
				case outcomeIgnored:
					result.Ignored++
				}
			}
		}
	}

	return result
}

// typedAction returns the action stored with a value written by New or AddUnique.
func typedAction(action ParseAction, game Game) ParseAction {
	if game.ForcesAddTyping() {
		return Add
	}
	return action
}

func applyValue(section *ConfigSection, name string, v ConfigValue, game Game) outcome {
	switch v.Action {
	case New:
		stored := NewValue(v.Value, typedAction(v.Action, game))
		if existing, ok := section.Property(name); ok {
			existing.Clear()
			existing.Add(stored)
		} else {
			section.AddValue(name, stored)
		}
		return outcomeApplied

	case Add:
		section.AddValue(name, v)
		return outcomeApplied

	case AddUnique:
		if existing, ok := section.Property(name); ok && existing.Contains(v.Value) {
			log.Debugf("[%s] %s already contains %q", section.Name, name, v.Value)
			return outcomeUnchanged
		}
		section.AddValue(name, NewValue(v.Value, typedAction(v.Action, game)))
		return outcomeApplied

	case RemoveProperty:
		if section.RemoveProperty(name) {
			return outcomeApplied
		}
		return outcomeUnchanged

	case Remove:
		existing, ok := section.Property(name)
		if !ok {
			return outcomeUnchanged
		}
		if existing.removeMatching(v.Value) > 0 {
			return outcomeApplied
		}
		return outcomeUnchanged

	default:
		log.Warnf("[%s] %s: action %s is not implemented, skipping value %q", section.Name, name, v.Action, v.Value)
		return outcomeIgnored
	}
}

func logMissingAsset(deltaName, assetName, sectionName string, targets *Assets) {
	hint := ""
	if suggestions := SuggestNames(assetName, targets.Keys(), 3); len(suggestions) > 0 {
		hint = " (did you mean " + strings.Join(suggestions, ", ") + "?)"
	}
	log.Infof("Delta %s: target file %s does not exist, skipping section [%s]%s", deltaName, assetName, sectionName, hint)
}
