package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/temirov/treemark/internal/config"
)

const (
	copyFlagTypeName            = "copy"
	invalidCopyFlagValueMessage = "invalid copy flag value '%s'"
)

// interpretCopyFlagLiteral treats an empty value as true and otherwise
// accepts the shared boolean spellings.
func interpretCopyFlagLiteral(input string) (bool, bool) {
	if strings.TrimSpace(input) == "" {
		return true, true
	}
	return config.ParseBooleanLiteral(input)
}

type copyFlagValue struct {
	target *bool
}

func (value *copyFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf(invalidCopyFlagValueMessage, input)
	}
	booleanValue, ok := interpretCopyFlagLiteral(input)
	if !ok {
		return fmt.Errorf(invalidCopyFlagValueMessage, input)
	}
	*value.target = booleanValue
	return nil
}

func (value *copyFlagValue) String() string {
	if value == nil || value.target == nil {
		return "false"
	}
	if *value.target {
		return "true"
	}
	return "false"
}

func (value *copyFlagValue) Type() string {
	return copyFlagTypeName
}

func registerCopyFlag(flagSet *pflag.FlagSet, target *bool) {
	if flagSet == nil || target == nil {
		return
	}
	*target = false
	flagSet.Var(&copyFlagValue{target: target}, copyFlagName, copyFlagDescription)
	if lookup := flagSet.Lookup(copyFlagName); lookup != nil {
		lookup.NoOptDefVal = "true"
	}
}

// normalizeCopyFlagArguments rewrites bare --copy occurrences into an
// explicit --copy=<value> form. Only recognized boolean spellings are
// consumed as the value; any other following word stays in place, so a
// subcommand name or a positional path after --copy is never swallowed.
func normalizeCopyFlagArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		current := arguments[index]
		if current == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if current == "--"+copyFlagName {
			nextIndex := index + 1
			if nextIndex >= len(arguments) || strings.HasPrefix(arguments[nextIndex], "-") {
				normalized = append(normalized, fmt.Sprintf("--%s=true", copyFlagName))
				index++
				continue
			}
			if booleanValue, ok := interpretCopyFlagLiteral(arguments[nextIndex]); ok {
				normalized = append(normalized, fmt.Sprintf("--%s=%t", copyFlagName, booleanValue))
				index += 2
				continue
			}
			normalized = append(normalized, fmt.Sprintf("--%s=true", copyFlagName))
			index++
			continue
		}
		normalized = append(normalized, current)
		index++
	}
	return normalized
}
