package config

// Formula describes one release of the packaged software and how its source
// tree maps onto installed artifacts.
// - Name/Version/URL/SHA256: identify the release archive.
// - Binary/App/Example/Readme: file names inside the extracted archive.
// - Verify: the smoke test run against the installed binary.
type Formula struct {
	Name      string   `yaml:"name"`
	Desc      string   `yaml:"desc"`
	Homepage  string   `yaml:"homepage"`
	Version   string   `yaml:"version"`
	URL       string   `yaml:"url"`
	SHA256    string   `yaml:"sha256"`
	License   string   `yaml:"license"`
	DependsOn []string `yaml:"depends_on"`
	Binary    Binary   `yaml:"binary"`
	App       App      `yaml:"app"`
	Example   string   `yaml:"example"` // JSON hooks example shipped in the archive
	Readme    string   `yaml:"readme"`
	Verify    Verify   `yaml:"verify"`
}

// Binary maps the executable's file name in the archive to the command name
// it is installed under.
type Binary struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// App describes the application bundle compiled from a script resource.
type App struct {
	Name   string `yaml:"name"`   // bundle directory name, e.g. CCMenuBar.app
	Script string `yaml:"script"` // AppleScript source compiled into the bundle
	Icon   string `yaml:"icon"`   // optional, copied into Contents/Resources
}

// Verify is the post-install smoke test.
type Verify struct {
	Args   []string `yaml:"args"`
	Expect string   `yaml:"expect"`
}

// Paths holds every install destination. Empty fields are derived by Resolve.
type Paths struct {
	HomebrewPrefix string `yaml:"homebrew_prefix"`
	Prefix         string `yaml:"prefix"` // keg: <homebrew_prefix>/Cellar/<name>/<version>
	Bin            string `yaml:"bin"`
	Share          string `yaml:"share"`
	Doc            string `yaml:"doc"`
	Applications   string `yaml:"applications"`
	Cache          string `yaml:"cache"`
	SettingsFile   string `yaml:"settings_file"`
	Compiler       string `yaml:"compiler"` // script-to-bundle compiler executable
}

// Config is the top-level structure returned after loading the YAML file and
// applying environment overrides.
type Config struct {
	Formula Formula `yaml:"formula"`
	Paths   Paths   `yaml:"paths"`
}
