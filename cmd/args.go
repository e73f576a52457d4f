package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

func parseIndex(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, s)
	}
	return n, nil
}

func parseIndexes(names []string, args []string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		n, err := parseIndex(name, args[i])
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// joinText turns the remaining arguments into one prompt text.
func joinText(args []string) string {
	return strings.Join(args, " ")
}
