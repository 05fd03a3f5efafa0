package main

import (
	"fmt"
	"strconv"
	"strings"
)

// stringList is a repeatable flag. The first use replaces the default;
// an empty value clears the list.
type stringList struct {
	values []string
	set    bool
}

func (l *stringList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(l.values, ", ")
}

func (l *stringList) Set(v string) error {
	if !l.set {
		l.values = nil
		l.set = true
	}
	if v != "" {
		l.values = append(l.values, v)
	}
	return nil
}

// intList accepts comma-separated integers and may be repeated
type intList struct {
	values []int
	set    bool
}

func (l *intList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(l.values))
	for i, v := range l.values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(v string) error {
	if !l.set {
		l.values = nil
		l.set = true
	}
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid line number %q", part)
		}
		l.values = append(l.values, n)
	}
	return nil
}
