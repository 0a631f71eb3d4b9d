package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	// localSuffix names an optional overlay next to the main file, e.g. config.local.yaml.
	// It is meant for developer secrets and is never committed.
	localSuffix = ".local"
)

// LoadWithEnv decodes <name>.yaml from the first search path that has it.
// A sibling <name>.local.yaml is merged on top when present, and environment
// variables are merged last.
func LoadWithEnv[T any](name string, configPath ...string) (*T, error) {
	l, err := newLoader(name, configPath)
	if err != nil {
		return nil, err
	}

	if err := l.load(); err != nil {
		return nil, err
	}

	cfg := new(T)
	if err := l.decode(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

type loader struct {
	name string
	dir  string
	k    *koanf.Koanf
}

func newLoader(name string, configPath []string) (*loader, error) {
	dirs, err := searchDirs(configPath)
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if fileExists(filepath.Join(dir, name+".yaml")) {
			return &loader{name: name, dir: dir, k: koanf.New(".")}, nil
		}
	}

	return nil, errors.Errorf("config file %s.yaml not found in %v", name, dirs)
}

func searchDirs(configPath []string) ([]string, error) {
	dirs := []string{defaultPath}
	if len(configPath) == 0 {
		return dirs, nil
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "os.Getwd")
	}
	for _, path := range configPath {
		dirs = append(dirs, filepath.Join(pwd, path))
	}

	return dirs, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

func (l *loader) load() error {
	mainFile := filepath.Join(l.dir, l.name+".yaml")
	if err := l.k.Load(file.Provider(mainFile), yaml.Parser()); err != nil {
		return errors.Wrapf(err, "read %s", mainFile)
	}

	local := filepath.Join(l.dir, l.name+localSuffix+".yaml")
	if fileExists(local) {
		if err := l.k.Load(file.Provider(local), yaml.Parser()); err != nil {
			return errors.Wrapf(err, "read %s", local)
		}
	}

	// Keys are matched against what the files declared so far, keeping YAML casing.
	known := l.k.Raw()
	if err := l.k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return canonicalizeEnvKey(key, known), value
		},
	}), nil); err != nil {
		return errors.Wrap(err, "load env variables failed")
	}

	return nil
}

func (l *loader) decode(out any) error {
	err := l.k.UnmarshalWithConf("", out, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			MatchName:        strings.EqualFold,
		},
	})

	return errors.Wrapf(err, "unmarshal %s config failed", l.name)
}

// canonicalizeEnvKey turns POSTGRES_SSLMODE into postgres.sslMode by walking the
// known tree. Segments without a match are lowercased and end the walk.
func canonicalizeEnvKey(rawKey string, known map[string]any) string {
	var path []string
	node := known

	for _, segment := range strings.Split(rawKey, "_") {
		if segment == "" {
			continue
		}

		key, child := matchKey(node, segment)
		path = append(path, key)
		node = child
	}

	return strings.Join(path, ".")
}

// matchKey returns the existing key equal to segment ignoring case and punctuation,
// with its subtree, or the lowercased segment and nil.
func matchKey(node map[string]any, segment string) (string, map[string]any) {
	want := foldKey(segment)
	for key, value := range node {
		if foldKey(key) == want {
			child, _ := value.(map[string]any)

			return key, child
		}
	}

	return strings.ToLower(segment), nil
}

func foldKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}

		return -1
	}, s)
}
