package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ *root }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.out(), "%s version %s", v.Program(), version)
	if commit != "" {
		fmt.Fprintf(v.out(), " (%s", commit)
		if date != "" {
			fmt.Fprintf(v.out(), ", %s", date)
		}
		fmt.Fprint(v.out(), ")")
	}
	fmt.Fprintln(v.out())
	return nil
}
