package configarray

// PluginDefinition is the loaded body of a plugin package: named shareable
// configs, environments, processors, and rules. Members the plugin does
// not provide are nil. Definitions are treated as immutable once loaded
// and are shared by identity across config arrays.
type PluginDefinition struct {
	Configs      map[string]any
	Environments map[string]any
	Processors   map[string]any
	Rules        map[string]any
}

// PluginReference is a resolved plugin handle. Either Definition is set,
// or Error holds the failure that occurred while resolving the plugin.
// A stored error is latent: it surfaces only when an element carrying the
// reference participates in extraction.
type PluginReference struct {
	// Definition is the loaded plugin, nil when resolution failed.
	Definition *PluginDefinition
	// FilePath is where the plugin was loaded from, empty for pool plugins.
	FilePath string
	// ID is the shorthand plugin id used as the key in plugin mappings.
	ID string
	// ImporterPath is the config file that referenced the plugin.
	ImporterPath string
	// ImporterName is the logical name of the referencing config.
	ImporterName string
	// Error is the stored resolution failure, nil when loaded.
	Error error
}

// ParserReference is a resolved parser handle with the same lazy-error
// semantics as PluginReference.
type ParserReference struct {
	// Definition is the loaded parser, nil when resolution failed.
	Definition any
	// FilePath is where the parser was loaded from.
	FilePath string
	// ID is the parser specifier as written in the config.
	ID string
	// ImporterPath is the config file that referenced the parser.
	ImporterPath string
	// ImporterName is the logical name of the referencing config.
	ImporterName string
	// Error is the stored resolution failure, nil when loaded.
	Error error
}

// ResolvedProcessor is a processor selected during extraction.
type ResolvedProcessor struct {
	// Definition is the processor as exported by its plugin.
	Definition any
	// ID is the qualified processor name, e.g. "markdown/markdown".
	ID string
}
