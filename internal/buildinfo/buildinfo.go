// Package buildinfo carries values stamped at link time with
// -ldflags "-X github.com/go-fatigue/fatigue/internal/buildinfo.BuildTag=...".
package buildinfo

import (
	"fmt"
	"io"
)

const Graffiti = "" +
	" ___      _   _                 \n" +
	"| __|__ _| |_(_)__ _ _  _ ___ \n" +
	"| _|/ _` |  _| / _` | || / -_)\n" +
	"|_| \\__,_|\\__|_\\__, |\\_,_\\___|\n" +
	"               |___/          \n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "FATIGUE"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

// Fprint writes the banner followed by name, build time and tag.
func (b buildinfo) Fprint(w io.Writer) {
	_, _ = fmt.Fprint(w, Graffiti)
	_, _ = fmt.Fprintf(w, "%s: %s, %s\n", b.Name(), b.Time(), b.Tag())
}

var Info buildinfo
