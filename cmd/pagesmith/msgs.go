package pagesmith

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render template modules into static pages"
	MsgVersionShort    = "Print version information"
	MsgGuideShort      = "Show the template and override guide"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Base configuration file (YAML, or JSON/TOML/HCL by extension)"
	MsgFlagData     = "Alias for --config"
	MsgFlagOutdir   = "Output directory, created if absent (required)"
	MsgFlagIndexes  = "Write <outdir>/<name>/index.html instead of <outdir>/<name>.html"
	MsgFlagFormat   = "Report format: auto, term, text or json"
	MsgFlagJobs     = "Number of templates rendered in parallel"
	MsgFlagPartials = "Shared template files or globs loaded into every module"
	MsgFlagSitemap  = "Write sitemap.xml for the written pages under this base URL"
	MsgFlagSettings = "Settings file (default: pagesmith.yaml in the working directory)"
	MsgFlagEnvFile  = "Dotenv file loaded before reading PAGESMITH_* settings"

	// Notices
	MsgNoConfig = "Config not specified, an empty mapping will be passed to templates"

	// Error messages
	MsgErrPartialGlob = "invalid partials pattern %s"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/guide.md
	MsgGuide string
)
