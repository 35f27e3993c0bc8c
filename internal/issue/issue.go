// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MkdocsNotFoundId Id = iota + 1
	TerraformNotFoundId
	GitNotFoundId
	DocsDirNotFoundId
	MkdocsConfigNotFoundId
	WorkspaceManifestNotFoundId
	PartialsNotExtractedId
	ProviderNameNotFoundId
	ConfigLoadFailedId
	HookExecutionFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links into the foundry documentation
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

	mkdocsNotFoundIssue = &Issue{
		id: MkdocsNotFoundId,
		mdMsg: `
# mkdocs not found!

Documentation builds shell out to the mkdocs binary, and it was not found
on your PATH.

## Things you can try:
- Install the docs toolchain into the project environment:
~~~
$ uv sync --group docs
~~~

- Or install mkdocs globally:
~~~
$ uv tool install mkdocs
~~~

- Verify the binary is reachable:
~~~
$ which mkdocs
~~~`,
		extLinks: []HttpLink{"https://www.mkdocs.org/user-guide/installation/"},
	}

	terraformNotFoundIssue = &Issue{
		id: TerraformNotFoundId,
		mdMsg: `
# terraform not found!

Example validation runs 'terraform fmt -check' and 'terraform validate'
against every example, and the terraform binary was not found on your PATH.

## Things you can try:
- Install terraform (or opentofu) and retry:
~~~
$ terraform version
~~~

- Point foundry at a specific binary in your config.cue:
~~~cue
tools: terraform: "/usr/local/bin/tofu"
~~~`,
		extLinks: []HttpLink{"https://developer.hashicorp.com/terraform/install"},
	}

	gitNotFoundIssue = &Issue{
		id: GitNotFoundId,
		mdMsg: `
# git not found!

Workspace synchronization clones and updates repositories with git, and the
git binary was not found on your PATH.

## Things you can try:
- Install git through your package manager and retry:
~~~
$ git version
~~~`,
	}

	docsDirNotFoundIssue = &Issue{
		id: DocsDirNotFoundId,
		mdMsg: `
# No docs/ directory found!

The current project has no docs/ directory to validate.

## Things you can try:
- Run from the project root (the directory containing mkdocs.yml)
- Scaffold the shared docs assets first:
~~~
$ foundry init
~~~`,
	}

	mkdocsConfigNotFoundIssue = &Issue{
		id: MkdocsConfigNotFoundId,
		mdMsg: `
# No mkdocs.yml found!

Docs validation needs the project's mkdocs.yml.

## Things you can try:
- Run from the project root
- Scaffold the shared configuration:
~~~
$ foundry init
~~~

and create an mkdocs.yml that inherits from it:
~~~yaml
INHERIT: .provide/foundry/base-mkdocs.yml
site_name: my-project
~~~`,
	}

	workspaceManifestNotFoundIssue = &Issue{
		id: WorkspaceManifestNotFoundId,
		mdMsg: `
# No workspace manifest found!

Workspace sync reads a workspace.toml manifest listing the repositories to
clone and keep up to date, and none was found.

## Things you can try:
- Create a workspace.toml next to your projects:
~~~toml
root = "."

[[repos]]
name = "provide-foundation"
url  = "https://github.com/provide-io/provide-foundation.git"

[hooks]
post_sync = ["uv sync"]
~~~

- Or point at an explicit manifest:
~~~
$ foundry workspace sync --manifest path/to/workspace.toml
~~~`,
	}

	partialsNotExtractedIssue = &Issue{
		id: PartialsNotExtractedId,
		mdMsg: `
# Shared partials not extracted!

Documentation references shared partials, but .provide/foundry/docs/_partials
does not exist in this project yet.

## Things you can try:
- Extract the shared assets:
~~~
$ foundry init
~~~`,
	}

	providerNameNotFoundIssue = &Issue{
		id: ProviderNameNotFoundId,
		mdMsg: `
# Provider name could not be determined!

Example validation needs the provider name, and neither the PROVIDER_NAME
environment variable nor a parseable pyproject.toml was found.

## Things you can try:
- Set the override explicitly:
~~~
$ PROVIDER_NAME=pyvider foundry examples validate
~~~

- Or ensure pyproject.toml declares a project name:
~~~toml
[project]
name = "terraform-provider-pyvider"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the foundry configuration file.

## Common issues:
- Invalid CUE syntax in config.cue
- Unknown field names
- Invalid values for known fields

## Things you can try:
- Check the error message above for the specific field
- Show the resolved configuration path:
~~~
$ foundry config path
~~~

- Recreate the default configuration:
~~~
$ foundry config init
~~~`,
	}

	hookExecutionFailedIssue = &Issue{
		id: HookExecutionFailedId,
		mdMsg: `
# Post-sync hook failed!

One of the post_sync hooks in your workspace manifest exited non-zero.

## Things you can try:
- Run the hook manually inside the repository to see the full output
- Check the hook's shell syntax:
~~~
$ foundry workspace sync --verbose
~~~

- Remove or fix the failing entry under [hooks] in workspace.toml`,
	}

	issues = map[Id]*Issue{
		mkdocsNotFoundIssue.Id():            mkdocsNotFoundIssue,
		terraformNotFoundIssue.Id():         terraformNotFoundIssue,
		gitNotFoundIssue.Id():               gitNotFoundIssue,
		docsDirNotFoundIssue.Id():           docsDirNotFoundIssue,
		mkdocsConfigNotFoundIssue.Id():      mkdocsConfigNotFoundIssue,
		workspaceManifestNotFoundIssue.Id(): workspaceManifestNotFoundIssue,
		partialsNotExtractedIssue.Id():      partialsNotExtractedIssue,
		providerNameNotFoundIssue.Id():      providerNameNotFoundIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		hookExecutionFailedIssue.Id():       hookExecutionFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
