package config

// Projectfile represents the structure of the plink.yaml configuration file.
type Projectfile struct {
	Profile   string       `yaml:"profile"`
	Base      string       `yaml:"base"`
	Entry     string       `yaml:"entry"`
	Libraries []LibraryDTO `yaml:"libraries"`
}

// LibraryDTO represents a library definition in the configuration.
type LibraryDTO struct {
	Name         string   `yaml:"name"`
	Exports      bool     `yaml:"exports"`
	DependsOn    []string `yaml:"dependsOn"`
	ExportFilter bool     `yaml:"exportFilter"`
}
