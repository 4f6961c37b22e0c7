// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	NameNotFoundId Id = iota + 1
	DeclaredNameMismatchId
	ModulesRootNotFoundId
	DirectoryNotFoundId
	UnitParseErrorId
	UnitLoadFailedId
	ConfigLoadFailedId
	ManifestParseErrorId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	nameNotFoundIssue = &Issue{
		id: NameNotFoundId,
		mdMsg: `
# Unit not found!

No registered override matched the requested name, and no namespace
mapping produced a file on disk.

## How names map to files

A reference like ` + "`Acme.My_Widget`" + ` splits at the **last dot**: the
namespace is ` + "`Acme.`" + ` and the tail is ` + "`My_Widget`" + `. Underscores in the
tail become directory separators and the letter case is kept as
written, so the loader probes:

~~~
<dir for acme.>/My/Widget.cue
<dir for acme.>/My/Widget.unit
<dir for acme.>/My/Widget.unitfile
~~~

## Things you can try:
- List the active mappings and check where the name would be probed:
~~~
$ unitload mappings
$ unitload resolve Acme.My_Widget
~~~
- Register the namespace prefix if it is missing:
~~~
$ unitload config show
~~~
- Pin the name to an explicit file with an override in unitload.toml.`,
	}

	declaredNameMismatchIssue = &Issue{
		id: DeclaredNameMismatchId,
		mdMsg: `
# Loaded file does not declare the requested name!

The resolver found a file for the requested name and the file loaded
without errors, but afterwards the name was still undefined. The file
exists at the conventional path yet declares a different name inside.

## Things you can try:
- Open the file and compare its declared name with the requested one:
~~~
$ unitload resolve --probe The.Name
~~~
- Remember that matching is case-insensitive, but underscores in the
  namespace part are **not** folded into directory separators. Only the
  tail (after the last dot) maps underscores to directories.
- Rename either the file or the declaration so they agree.`,
	}

	modulesRootNotFoundIssue = &Issue{
		id: ModulesRootNotFoundId,
		mdMsg: `
# Modules root directory not found!

The default modules root is derived from the executable location (two
directories above it). That directory does not exist, so the catch-all
namespace mapping was not installed.

## Things you can try:
- Set an explicit root in your config file:
~~~cue
modules_root: "/path/to/units"
~~~
- Or register namespace mappings that point at real directories; named
  prefixes keep working without a root.`,
	}

	directoryNotFoundIssue = &Issue{
		id: DirectoryNotFoundId,
		mdMsg: `
# Namespace directory not found!

A namespace mapping was rejected because its directory does not exist.
Mappings are validated at registration time; the rejected mapping was
discarded and earlier mappings were kept.

## Things you can try:
- Create the directory, then re-run:
~~~
$ mkdir -p /path/to/units
~~~
- Check for typos in the directory path in your config or manifest.
- Run ` + "`unitload mappings`" + ` to see which mappings were accepted.`,
	}

	unitParseErrorIssue = &Issue{
		id: UnitParseErrorId,
		mdMsg: `
# Unit file failed to parse!

The file was found at the conventional path but its contents were
rejected by the unit schema.

## Minimal valid unit file:
~~~cue
unit: {
	name: "Acme.Gadget"
}
~~~

## Things you can try:
- Check the reported path into the document for the offending field.
- Validate the name: it must start with a letter (an optional leading
  dot is allowed) and contain only letters, digits, underscores and
  dots.`,
	}

	unitLoadFailedIssue = &Issue{
		id: UnitLoadFailedId,
		mdMsg: `
# Unit failed to load!

The resolver found a file for the requested name but the environment
reported an error while loading it.

## Things you can try:
- Re-run with verbose diagnostics:
~~~
$ unitload --verbose load The.Name
~~~
- For shell units, run the file directly to see the raw failure:
~~~
$ sh /path/to/unit.sh
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration failed to load!

The config file exists but could not be parsed or validated.

## Things you can try:
- Check the file for CUE syntax errors.
- Compare against the default configuration:
~~~
$ unitload config show
$ unitload config path
~~~
- Move the file aside to fall back to defaults.`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Manifest failed to parse!

A unitload.toml manifest was found but its contents are not valid TOML.

## Minimal valid manifest:
~~~toml
[namespaces]
"acme." = "units/acme"

[overrides]
"Acme.Gadget" = "special/gadget.cue"
~~~

## Things you can try:
- Check quoting: prefixes containing dots must be quoted TOML keys.
- Remove the manifest to rely on config mappings only.`,
	}

	issues = map[Id]*Issue{
		nameNotFoundIssue.Id():         nameNotFoundIssue,
		declaredNameMismatchIssue.Id(): declaredNameMismatchIssue,
		modulesRootNotFoundIssue.Id():  modulesRootNotFoundIssue,
		directoryNotFoundIssue.Id():    directoryNotFoundIssue,
		unitParseErrorIssue.Id():       unitParseErrorIssue,
		unitLoadFailedIssue.Id():       unitLoadFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		manifestParseErrorIssue.Id():   manifestParseErrorIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
