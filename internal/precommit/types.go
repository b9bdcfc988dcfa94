package precommit

import "strings"

const (
	// ConfigFileName is the canonical configuration file name consumed by the runner.
	ConfigFileName = ".pre-commit-config.yaml"

	localRepositorySentinelConstant = "local"
	metaRepositorySentinelConstant  = "meta"
)

// Config captures the top-level configuration mapping.
type Config struct {
	Repos                   []Repo            `yaml:"repos"`
	DefaultInstallHookTypes []string          `yaml:"default_install_hook_types,omitempty"`
	DefaultLanguageVersion  map[string]string `yaml:"default_language_version,omitempty"`
	DefaultStages           []string          `yaml:"default_stages,omitempty"`
	Files                   string            `yaml:"files,omitempty"`
	Exclude                 string            `yaml:"exclude,omitempty"`
	FailFast                bool              `yaml:"fail_fast,omitempty"`
	MinimumPreCommitVersion string            `yaml:"minimum_pre_commit_version,omitempty"`
	CI                      map[string]any    `yaml:"ci,omitempty"`
}

// Repo describes one provider record: source identity, revision pin, and hooks.
type Repo struct {
	Repo  string `yaml:"repo"`
	Rev   string `yaml:"rev,omitempty"`
	Hooks []Hook `yaml:"hooks"`
}

// Hook describes one hook entry within a provider record.
type Hook struct {
	ID                     string   `yaml:"id"`
	Alias                  string   `yaml:"alias,omitempty"`
	Name                   string   `yaml:"name,omitempty"`
	Entry                  string   `yaml:"entry,omitempty"`
	Language               string   `yaml:"language,omitempty"`
	LanguageVersion        string   `yaml:"language_version,omitempty"`
	Files                  string   `yaml:"files,omitempty"`
	Exclude                string   `yaml:"exclude,omitempty"`
	Types                  []string `yaml:"types,omitempty"`
	TypesOr                []string `yaml:"types_or,omitempty"`
	ExcludeTypes           []string `yaml:"exclude_types,omitempty"`
	Args                   []string `yaml:"args,omitempty"`
	Stages                 []string `yaml:"stages,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`
	AlwaysRun              bool     `yaml:"always_run,omitempty"`
	Verbose                bool     `yaml:"verbose,omitempty"`
	LogFile                string   `yaml:"log_file,omitempty"`
	PassFilenames          *bool    `yaml:"pass_filenames,omitempty"`
}

// IsLocal reports whether the record uses the local repository sentinel.
func (repository Repo) IsLocal() bool {
	return strings.TrimSpace(repository.Repo) == localRepositorySentinelConstant
}

// IsMeta reports whether the record uses the meta repository sentinel.
func (repository Repo) IsMeta() bool {
	return strings.TrimSpace(repository.Repo) == metaRepositorySentinelConstant
}

// IsRemote reports whether the record references an external provider repository.
func (repository Repo) IsRemote() bool {
	return !repository.IsLocal() && !repository.IsMeta()
}
