// Package describe turns schedule rules into plain English sentences, e.g.
//
//	During the week, at 07:30, rise these shutters "Kitchen", "Office".
package describe

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/rule"
)

const PausedNotice = "This schedule is currently paused\n"

type NameResolver interface {
	ShutterName(id string) (string, bool)
}

// NameFunc adapts a plain lookup function to a NameResolver.
type NameFunc func(id string) (string, bool)

func (f NameFunc) ShutterName(id string) (string, bool) {
	return f(id)
}

// Describe never fails, segments that can't be decoded are left out and
// unknown shutter ids are shown as they are.
func Describe(r rule.ScheduleRule, names NameResolver) string {
	var sb strings.Builder

	if !r.Active {
		sb.WriteString(PausedNotice)
	}
	sb.WriteString(rule.RepeatPhrase(r.RepeatPattern))
	sb.WriteString(rule.TimePhrase(r.TimeTrigger))
	sb.WriteString(rule.ActionPhrase(r.Action))
	sb.WriteString(targetPhrase(r.TargetIDs, names))

	return sb.String()
}

func DescribeEncoded(id string, e models.EncodedRule, names NameResolver) string {
	return Describe(rule.Decode(id, e), names)
}

func targetPhrase(ids []string, names NameResolver) string {
	quoted := `"` + strings.Join(lo.Map(ids, func(id string, _ int) string {
		return displayName(id, names)
	}), `", "`) + `"`
	if len(ids) == 1 {
		return fmt.Sprintf("the shutter %s.", quoted)
	}
	return fmt.Sprintf("these shutters %s.", quoted)
}

func displayName(id string, names NameResolver) string {
	if names == nil {
		return id
	}
	if name, ok := names.ShutterName(id); ok {
		return name
	}
	return id
}
