// flags.go defines constants for CLI flag names shared across extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

const (
	// Boolean flags

	FlagDryRun = "dry-run" // Preview without making changes
	FlagForce  = "force"   // Overwrite or skip confirmation
	FlagLocal  = "local"   // Use local scope

	// String flags

	FlagArg       = "arg"        // Repeated command argument
	FlagCommand   = "command"    // Executable for a stdio server
	FlagEnv       = "env"        // Repeated KEY=value environment entry
	FlagEnvFile   = "envfile"    // Path to a KEY=value file
	FlagHeader    = "header"     // Repeated Key=value HTTP header
	FlagOlderThan = "older-than" // Retention window (7d, 4w, 3m)
	FlagSince     = "since"      // History window (12h, 7d)
	FlagSource    = "source"     // Audit log source filter
	FlagURL       = "url"        // Streamable HTTP endpoint

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
