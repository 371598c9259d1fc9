package parser

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Config is a line-oriented INI-style view of a configuration file. Keys
// that appear before any [section] header live in the section named "".
// Sections and keys keep their first-seen order.
type Config struct {
	Sections []ConfigSection
}

type ConfigSection struct {
	Name    string
	Entries []ConfigEntry
}

type ConfigEntry struct {
	Key   string
	Value string
}

// ParseConfig reads key=value lines grouped under [section] headers. Blank
// lines and '#' comments are skipped; any other line without '=' is ignored.
func ParseConfig(content string) *Config {
	cfg := &Config{Sections: []ConfigSection{}}
	current := -1

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") && len(line) >= 2 {
			current = cfg.open(line[1 : len(line)-1])
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		idx := current
		if idx < 0 {
			idx = cfg.section("")
		}
		cfg.Sections[idx].set(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	return cfg
}

// open starts a section, clearing it if the name was already seen.
func (c *Config) open(name string) int {
	idx := c.section(name)
	c.Sections[idx].Entries = nil
	return idx
}

// section returns the index of the named section, creating it if needed.
func (c *Config) section(name string) int {
	for i := range c.Sections {
		if c.Sections[i].Name == name {
			return i
		}
	}
	c.Sections = append(c.Sections, ConfigSection{Name: name})
	return len(c.Sections) - 1
}

func (s *ConfigSection) set(key, value string) {
	for i := range s.Entries {
		if s.Entries[i].Key == key {
			s.Entries[i].Value = value
			return
		}
	}
	s.Entries = append(s.Entries, ConfigEntry{Key: key, Value: value})
}

// Get returns the value of key in the named section.
func (c *Config) Get(section, key string) (string, bool) {
	for _, s := range c.Sections {
		if s.Name != section {
			continue
		}
		for _, e := range s.Entries {
			if e.Key == key {
				return e.Value, true
			}
		}
	}
	return "", false
}

// Map returns the configuration as nested maps, section -> key -> value.
func (c *Config) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, len(c.Sections))
	for _, s := range c.Sections {
		values := make(map[string]string, len(s.Entries))
		for _, e := range s.Entries {
			values[e.Key] = e.Value
		}
		out[s.Name] = values
	}
	return out
}

// MarshalJSON writes the sections as a JSON object in insertion order.
func (c *Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range c.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, s.Name); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, e := range s.Entries {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, e.Key); err != nil {
				return nil, err
			}
			v, err := json.Marshal(e.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}
