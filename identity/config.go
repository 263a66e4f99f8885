package identity

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigDir is where the one-value configuration files are read from
// when no other directory is given.
const DefaultConfigDir = "/etc/nullmailer"

// These are the names of the configuration files read by Load.
const (
	FileDefaultDomain = "defaultdomain"
	FileDefaultHost   = "defaulthost"
	FileIDHost        = "idhost"
)

// Config holds the host names used to complete addresses and to generate
// header fields.
type Config struct {
	// DefaultDomain is appended to host names that have no dot in them.
	DefaultDomain string

	// DefaultHost is the host used for unqualified addresses and for the
	// generated From field.
	DefaultHost string

	// IDHost is the host used on the right side of generated Message-Ids.
	IDHost string
}

// readValue returns the first line of the named file in dir, with surrounding
// whitespace removed. It returns false if the file does not exist or holds
// nothing but whitespace.
func readValue(dir, name string) (string, bool, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("unable to read config %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	s := bufio.NewScanner(f)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return "", false, fmt.Errorf("unable to read config %s: %w", name, err)
		}
		return "", false, nil
	}

	v := strings.TrimSpace(s.Text())
	return v, v != "", nil
}

// Load reads the configuration files found in dir. Files that are missing
// fall back to values taken from the system: the domain name and host name of
// this machine. The IDHost falls back to the DefaultHost. Both DefaultHost
// and IDHost are canonicalized.
func Load(dir string) (*Config, error) {
	var (
		cfg   Config
		found bool
		err   error
	)

	cfg.DefaultDomain, found, err = readValue(dir, FileDefaultDomain)
	if err != nil {
		return nil, err
	} else if !found {
		cfg.DefaultDomain = systemDomain()
	}

	cfg.DefaultHost, found, err = readValue(dir, FileDefaultHost)
	if err != nil {
		return nil, err
	} else if !found {
		cfg.DefaultHost = systemHost()
	}

	cfg.IDHost, found, err = readValue(dir, FileIDHost)
	if err != nil {
		return nil, err
	} else if !found {
		cfg.IDHost = cfg.DefaultHost
	}

	cfg.DefaultHost = cfg.Canonicalize(cfg.DefaultHost)
	cfg.IDHost = cfg.Canonicalize(cfg.IDHost)

	return &cfg, nil
}

// Canonicalize returns the host name completed with the default domain. A
// name that already contains a dot is returned as is, as is any name when
// there is no default domain.
func (c *Config) Canonicalize(host string) string {
	if host == "" || strings.Contains(host, ".") || c.DefaultDomain == "" {
		return host
	}

	if strings.HasPrefix(c.DefaultDomain, ".") {
		return host + c.DefaultDomain
	}
	return host + "." + c.DefaultDomain
}

// systemHost returns the host name of this machine or "localhost".
func systemHost() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "localhost"
	}
	return h
}

// systemDomain returns the domain name of this machine. This is the domain
// the system reports, or failing that, the part of the host name following
// the first dot.
func systemDomain() string {
	if d := unameDomain(); d != "" && d != "(none)" {
		return d
	}

	if _, d, found := strings.Cut(systemHost(), "."); found {
		return d
	}
	return ""
}
