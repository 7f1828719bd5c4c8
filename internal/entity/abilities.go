package entity

// Ability names understood by the policy checker.
const (
	AbilityRead            = "read"
	AbilityUpdate          = "update"
	AbilityCreateDocument  = "createDocument"
	AbilityCreateTemplate  = "createTemplate"
	AbilityStar            = "star"
	AbilityUnstar          = "unstar"
	AbilityPublish         = "publish"
	AbilityUnpublish       = "unpublish"
	AbilitySubscribe       = "subscribe"
	AbilityUnsubscribe     = "unsubscribe"
	AbilityDownload        = "download"
	AbilityDuplicate       = "duplicate"
	AbilityPinToHome       = "pinToHome"
	AbilityPinToCollection = "pinToCollection"
	AbilityUnpin           = "unpin"
	AbilityShare           = "share"
	AbilityMove            = "move"
)

// Abilities is the set of permissions a user holds on one entity. Missing
// keys are false.
type Abilities map[string]bool

// Can reports whether the ability is granted.
func (a Abilities) Can(name string) bool {
	return a[name]
}

// ExportFormat is a document download format.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatHTML     ExportFormat = "html"
	FormatJSON     ExportFormat = "json"
)

// Formats lists the supported export formats in menu order.
var Formats = []ExportFormat{FormatMarkdown, FormatHTML, FormatJSON}

// Extension returns the file extension for the format, including the dot.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	default:
		return ""
	}
}
