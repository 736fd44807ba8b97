package tui

import (
	"github.com/charmbracelet/huh"
)

func CreateFilterForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("extensions").
				Title("Default Extensions").
				Description("Comma-separated, e.g. .go, .md, .yaml").
				Value(&values.Extensions).
				Placeholder(".txt, .md, .js"),

			huh.NewConfirm().
				Key("process_all").
				Title("Process All Files").
				Description("Ignore extensions and include every file").
				Value(&values.ProcessAll),
		),
	).WithTheme(FormTheme(false))
}

func CreateRemoteForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("proxy_url").
				Title("Proxy URL").
				Description("Prefix for archive downloads; the archive URL is appended escaped. Empty downloads directly").
				Value(&values.ProxyURL).
				Placeholder("https://corsproxy.io/?url=").
				Validate(ValidateProxyURL),
		),
	).WithTheme(FormTheme(false))
}

func CreateFetchForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("timeout").
				Title("Request Timeout").
				Description("HTTP request timeout (e.g., 30s, 2m)").
				Value(&values.FetchTimeout).
				Placeholder("1m30s").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("max_retries").
				Title("Max Retries").
				Description("Retries for 429/5xx responses (0-10)").
				Value(&values.MaxRetries).
				Placeholder("2").
				Validate(ValidateIntRange(0, 10)),

			huh.NewConfirm().
				Key("stealth").
				Title("Stealth Transport").
				Description("Use a browser TLS fingerprint for downloads").
				Value(&values.Stealth),

			huh.NewInput().
				Key("user_agent").
				Title("User Agent").
				Description("Custom User-Agent header (leave empty for a random browser)").
				Value(&values.UserAgent).
				Placeholder("Mozilla/5.0..."),

			huh.NewInput().
				Key("max_archive_size").
				Title("Max Archive Size").
				Description("Largest download accepted (0 = unlimited)").
				Value(&values.MaxArchiveSize).
				Placeholder("200MB").
				Validate(ValidateSize),
		),
	).WithTheme(FormTheme(false))
}

func CreateArchiveForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("max_entry_size").
				Title("Max File Size").
				Description("Largest single file decoded from an archive (0 = unlimited)").
				Value(&values.MaxEntrySize).
				Placeholder("10MB").
				Validate(ValidateSize),
		),
	).WithTheme(FormTheme(false))
}

func CreateCacheForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Enable Cache").
				Description("Keep downloaded archives to avoid re-fetching").
				Value(&values.CacheEnabled),

			huh.NewInput().
				Key("ttl").
				Title("Cache TTL").
				Description("How long to keep cached archives (e.g., 1h, 24h)").
				Value(&values.CacheTTL).
				Placeholder("24h").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("directory").
				Title("Cache Directory").
				Description("Directory for cache storage").
				Value(&values.CacheDirectory).
				Placeholder("~/.codecollector/cache"),
		),
	).WithTheme(FormTheme(false))
}

func CreateConcurrencyForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("workers").
				Title("Workers").
				Description("Files decoded in parallel (1-64)").
				Value(&values.Workers).
				Placeholder("8").
				Validate(ValidateIntRange(1, 64)),
		),
	).WithTheme(FormTheme(false))
}

func CreateOutputForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("directory").
				Title("Output Directory").
				Description("Where to save the combined text file").
				Value(&values.OutputDirectory).
				Placeholder("."),

			huh.NewConfirm().
				Key("overwrite").
				Title("Overwrite Existing").
				Description("Replace an existing output file").
				Value(&values.OutputOverwrite),

			huh.NewConfirm().
				Key("json_metadata").
				Title("JSON Metadata").
				Description("Write a .json file listing the collected files").
				Value(&values.JSONMetadata),
		),
	).WithTheme(FormTheme(false))
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Trace", "trace"),
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
					huh.NewOption("Disabled", "disabled"),
				).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat),
		),
	).WithTheme(FormTheme(false))
}

func GetFormForCategory(category string, values *ConfigValues) *huh.Form {
	switch category {
	case "filter":
		return CreateFilterForm(values)
	case "remote":
		return CreateRemoteForm(values)
	case "fetch":
		return CreateFetchForm(values)
	case "archive":
		return CreateArchiveForm(values)
	case "cache":
		return CreateCacheForm(values)
	case "concurrency":
		return CreateConcurrencyForm(values)
	case "output":
		return CreateOutputForm(values)
	case "logging":
		return CreateLoggingForm(values)
	default:
		return nil
	}
}
