// Package flagx lets several components parse their own flags out of a
// shared os.Args without tripping over each other's flag sets.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the allowedFlags (and their values) from args.
// Both "-f value" and "-f=value" / "--flag=value" forms are recognized; a
// following token that starts with "-" is never taken as a value.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// LookupString returns the value of the last occurrence of any of names in
// args, or "" when none is present. Names are given without dashes.
func LookupString(args []string, names ...string) string {
	var value string

	allowed := make([]string, 0, len(names))
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		allowed = append(allowed, "-"+n, "--"+n)
		fs.StringVar(&value, n, "", "")
	}

	_ = fs.Parse(FilterArgs(args, allowed))
	return value
}

// JsonConfigFlags returns the config file path given via -c or -config,
// or "" when neither is present.
func JsonConfigFlags() string {
	return LookupString(os.Args[1:], "c", "config")
}
